package dtos

import "github.com/google/uuid"

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	PropertyID *uuid.UUID `json:"propertyId"`
	Name       string     `json:"name" validate:"required,min=2,max=120"`
	Email      string     `json:"email" validate:"required,email"`
	Phone      string     `json:"phone" validate:"max=30"`
	Subject    string     `json:"subject" validate:"max=200"`
	Body       string     `json:"body" validate:"required,min=5"`
}

type ContactResponse struct {
	Message string `json:"message"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type PinMessageRequest struct {
	Pinned bool `json:"pinned"`
}
