package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
)

/*
PropertyUpsertRequest is the admin create/update payload. The captación
block is optional; classification enums default server-side when blank.
*/
type PropertyUpsertRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=200"`
	ShortDescription string   `json:"shortDescription" validate:"max=300"`
	Description      string   `json:"description"`
	Price            int      `json:"price" validate:"gte=0"`
	Rooms            int      `json:"rooms" validate:"gte=0"`
	Bathrooms        int      `json:"bathrooms" validate:"gte=0"`
	Garages          int      `json:"garages" validate:"gte=0"`
	SquareMeters     *int     `json:"squareMeters" validate:"omitempty,gte=0"`
	Province         string   `json:"province"`
	Locality         string   `json:"locality" validate:"required"`
	Street           string   `json:"street"`
	Number           string   `json:"number"`
	Kind             string   `json:"kind"`
	Dwelling         string   `json:"dwelling"`
	Condition        string   `json:"condition"`
	Floor            string   `json:"floor"`
	Listing          string   `json:"listing"`
	SaleState        string   `json:"saleState"`
	Features         []string `json:"features"`
	Published        bool     `json:"published"`

	CapturedBy   *string    `json:"capturedBy"`
	CapturePct   *float64   `json:"capturePct" validate:"omitempty,gte=0,lte=100"`
	CaptureDate  *time.Time `json:"captureDate"`
	OwnerName    *string    `json:"ownerName"`
	OwnerPhone   *string    `json:"ownerPhone"`
	CaptureNotes *string    `json:"captureNotes"`
}

type PropertyListResponse struct {
	Results  []*models.Property `json:"results"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type AddImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

/*
ReorderImagesRequest lists every image of the property in the desired
display order; the server rewrites display_order to 0..n-1.
*/
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"imageIds" validate:"required,min=1"`
}
