package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// SeedTestData loads a few published sample listings so a fresh dev
// environment has something to render. Skipped when the catalog is not
// empty.
func SeedTestData(
	ctx context.Context,
	propRepo repositories.PropertyRepository,
	imageRepo repositories.PropertyImageRepository,
) error {
	existing, err := propRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		utils.Logger.Info("Seed skipped: catalog is not empty")
		return nil
	}

	now := time.Now().UTC()
	samples := []*models.Property{
		{
			ID:               uuid.New(),
			Title:            "Piso reformado en el centro de Igualada",
			ShortDescription: "Tres habitaciones, dos baños, muy luminoso",
			Price:            240000,
			Rooms:            3,
			Bathrooms:        2,
			SquareMeters:     utils.Ptr(95),
			Province:         "Barcelona",
			Locality:         "Igualada",
			Kind:             models.PropertyKindVivienda,
			Dwelling:         models.DwellingPiso,
			Condition:        models.ConditionBuenEstado,
			Listing:          models.ListingVenta,
			SaleState:        models.SaleStateDisponible,
			Features:         []string{"Ascensor", "Balcón", "Calefacción"},
			Published:        true,
			PublishedAt:      utils.Ptr(now),
		},
		{
			ID:               uuid.New(),
			Title:            "Casa con jardín en Vilanova del Camí",
			ShortDescription: "Cuatro habitaciones, garaje doble",
			Price:            320000,
			Rooms:            4,
			Bathrooms:        2,
			Garages:          2,
			SquareMeters:     utils.Ptr(180),
			Province:         "Barcelona",
			Locality:         "Vilanova del Camí",
			Kind:             models.PropertyKindVivienda,
			Dwelling:         models.DwellingCasa,
			Condition:        models.ConditionBuenEstado,
			Listing:          models.ListingVenta,
			SaleState:        models.SaleStateDisponible,
			Features:         []string{"Jardín", "Garaje"},
			Published:        true,
			PublishedAt:      utils.Ptr(now),
		},
		{
			ID:        uuid.New(),
			Title:     "Local comercial en Avenida Barcelona",
			Price:     1200,
			Province:  "Barcelona",
			Locality:  "Igualada",
			Kind:      models.PropertyKindLocal,
			Dwelling:  models.DwellingPiso,
			Condition: models.ConditionAReformar,
			Listing:   models.ListingAlquiler,
			SaleState: models.SaleStateDisponible,
			Published: false,
		},
	}

	for _, p := range samples {
		if err := propRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	sampleImages := []string{
		"https://placehold.co/1200x800?text=Salon",
		"https://placehold.co/1200x800?text=Cocina",
		"https://placehold.co/1200x800?text=Fachada",
	}
	for order, url := range sampleImages {
		img := &models.PropertyImage{
			ID:           uuid.New(),
			PropertyID:   samples[0].ID,
			URL:          url,
			DisplayOrder: order,
		}
		if err := imageRepo.Create(ctx, img); err != nil {
			return err
		}
	}

	utils.Logger.Infof("Seeded %d sample properties", len(samples))
	return nil
}
