// internal/models/property_image.go

package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyImage is exclusively owned by one Property and is deleted with
// it. The image with the lowest DisplayOrder is the listing's main image.
type PropertyImage struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
