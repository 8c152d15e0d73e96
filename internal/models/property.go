// internal/models/property.go

package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyKind string

const (
	PropertyKindVivienda PropertyKind = "Vivienda"
	PropertyKindOficina  PropertyKind = "Oficina"
	PropertyKindLocal    PropertyKind = "Local"
	PropertyKindNave     PropertyKind = "Nave"
	PropertyKindGaraje   PropertyKind = "Garaje"
	PropertyKindTerreno  PropertyKind = "Terreno"
)

type DwellingType string

const (
	DwellingPiso       DwellingType = "Piso"
	DwellingCasa       DwellingType = "Casa"
	DwellingChalet     DwellingType = "Chalet"
	DwellingAtico      DwellingType = "Ático"
	DwellingDuplex     DwellingType = "Dúplex"
	DwellingEstudio    DwellingType = "Estudio"
	DwellingMasia      DwellingType = "Masía"
	DwellingApartmento DwellingType = "Apartamento"
)

type ConditionType string

const (
	ConditionObraNueva  ConditionType = "ObraNueva"
	ConditionBuenEstado ConditionType = "BuenEstado"
	ConditionAReformar  ConditionType = "AReformar"
)

type FloorType string

const (
	FloorUltimaPlanta     FloorType = "UltimaPlanta"
	FloorPlantaIntermedia FloorType = "PlantaIntermedia"
	FloorBajo             FloorType = "Bajo"
)

type ListingType string

const (
	ListingVenta    ListingType = "Venta"
	ListingAlquiler ListingType = "Alquiler"
)

type SaleStateType string

const (
	SaleStateDisponible SaleStateType = "Disponible"
	SaleStateReservada  SaleStateType = "Reservada"
	SaleStateVendida    SaleStateType = "Vendida"
	SaleStateCerrada    SaleStateType = "Cerrada"
)

// ValidSaleState reports whether s is one of the four catalog sale states.
func ValidSaleState(s SaleStateType) bool {
	switch s {
	case SaleStateDisponible, SaleStateReservada, SaleStateVendida, SaleStateCerrada:
		return true
	}
	return false
}

// Property is one catalog record. Price is a currency-less non-negative
// integer; SquareMeters is nil when the surface is unknown. SourceURL is
// only set on records created by the bulk importer and is the primary
// duplicate-detection key for re-imports.
type Property struct {
	ID               uuid.UUID     `json:"id"`
	Title            string        `json:"title"`
	ShortDescription string        `json:"shortDescription,omitempty"`
	Description      string        `json:"description,omitempty"`
	Price            int           `json:"price"`
	Rooms            int           `json:"rooms"`
	Bathrooms        int           `json:"bathrooms"`
	Garages          int           `json:"garages"`
	SquareMeters     *int          `json:"squareMeters,omitempty"`
	Province         string        `json:"province"`
	Locality         string        `json:"locality"`
	Street           string        `json:"street,omitempty"`
	Number           string        `json:"number,omitempty"`
	Kind             PropertyKind  `json:"kind"`
	Dwelling         DwellingType  `json:"dwelling"`
	Condition        ConditionType `json:"condition"`
	Floor            FloorType     `json:"floor,omitempty"`
	Listing          ListingType   `json:"listing"`
	SaleState        SaleStateType `json:"saleState"`
	Features         []string      `json:"features,omitempty"`
	Published        bool          `json:"published"`
	PublishedAt      *time.Time    `json:"publishedAt,omitempty"`
	SourceURL        *string       `json:"sourceUrl,omitempty"`

	// Captación (listing-acquisition) metadata, maintained by the back office.
	CapturedBy   *string    `json:"capturedBy,omitempty"`
	CapturePct   *float64   `json:"capturePct,omitempty"`
	CaptureDate  *time.Time `json:"captureDate,omitempty"`
	OwnerName    *string    `json:"ownerName,omitempty"`
	OwnerPhone   *string    `json:"ownerPhone,omitempty"`
	CaptureNotes *string    `json:"captureNotes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on detail reads, ordered by DisplayOrder.
	Images []PropertyImage `json:"images,omitempty"`
}
