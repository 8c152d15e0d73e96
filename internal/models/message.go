// internal/models/message.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatusType string

const (
	MessageStatusNueva     MessageStatusType = "Nueva"
	MessageStatusEnProceso MessageStatusType = "EnProceso"
	MessageStatusCerrada   MessageStatusType = "Cerrada"
)

func ValidMessageStatus(s MessageStatusType) bool {
	switch s {
	case MessageStatusNueva, MessageStatusEnProceso, MessageStatusCerrada:
		return true
	}
	return false
}

// Message is a lead coming in through the public contact form.
// PropertyID is a weak reference: it survives deletion of the property
// (nulled by the database, not cascaded).
type Message struct {
	ID         uuid.UUID         `json:"id"`
	PropertyID *uuid.UUID        `json:"property_id,omitempty"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Body       string            `json:"body"`
	Status     MessageStatusType `json:"status"`
	Pinned     bool              `json:"pinned"`
	ReceivedAt time.Time         `json:"received_at"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
