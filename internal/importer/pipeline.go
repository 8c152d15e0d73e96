package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// Pipeline runs one upload end to end: normalize each row, classify it,
// persist the new ones, fold everything into a Report. Rows are
// processed sequentially in input order; no row failure aborts the
// batch and nothing is ever updated or deleted.
type Pipeline struct {
	props  repositories.PropertyRepository
	images repositories.PropertyImageRepository
}

func NewPipeline(props repositories.PropertyRepository, images repositories.PropertyImageRepository) *Pipeline {
	return &Pipeline{props: props, images: images}
}

// Run consumes the parsed rows. meta is non-nil only for JSON imports.
func (p *Pipeline) Run(ctx context.Context, rows []RawRow, meta *Metadata) (*Report, error) {
	detector := NewDetector(p.props)

	report := &Report{
		Details:  make([]Detail, 0, len(rows)),
		Metadata: meta,
	}

	for i, raw := range rows {
		rowNum := i + 1

		candidate, rowErr := Normalize(raw, rowNum)
		if rowErr != nil {
			report.addError(rowNum, rowErr.Reason)
			continue
		}

		dup, err := detector.Detect(ctx, candidate)
		if err != nil {
			// Lookup failure is a persistence-level problem for this
			// row; record it and keep going.
			utils.Logger.WithError(err).Warnf("import row %d: duplicate lookup failed", rowNum)
			report.addError(rowNum, "duplicate check failed: "+err.Error())
			continue
		}
		if dup != nil {
			report.addDuplicate(rowNum, candidate.Title, dup)
			continue
		}

		id, err := p.persist(ctx, candidate)
		if err != nil {
			utils.Logger.WithError(err).Warnf("import row %d: insert failed", rowNum)
			report.addError(rowNum, "insert failed: "+err.Error())
			continue
		}

		detector.Accept(candidate)
		report.addSuccess(rowNum, id, candidate.Title)
	}

	return report, nil
}

func (p *Pipeline) persist(ctx context.Context, c *Candidate) (uuid.UUID, error) {
	prop := &models.Property{
		ID:           uuid.New(),
		Title:        c.Title,
		Description:  c.Description,
		Price:        c.Price,
		Rooms:        c.Rooms,
		SquareMeters: c.SquareMeters,
		Province:     c.Province,
		Locality:     c.Locality,

		// Unmapped classification fields default to the catalog's
		// generic values; administrators refine them post-import.
		Kind:      models.PropertyKindVivienda,
		Dwelling:  models.DwellingPiso,
		Condition: models.ConditionBuenEstado,
		Listing:   models.ListingVenta,
		SaleState: models.SaleStateDisponible,

		Published: false,
	}
	if c.SourceURL != "" {
		prop.SourceURL = &c.SourceURL
	}
	if c.Advertiser != "" {
		prop.CapturedBy = utils.Ptr(c.Advertiser)
	}
	if c.ScrapedAt != nil {
		prop.CaptureDate = c.ScrapedAt
	}

	if err := p.props.Create(ctx, prop); err != nil {
		return uuid.Nil, err
	}

	for order, url := range c.ImageURLs {
		img := &models.PropertyImage{
			ID:           uuid.New(),
			PropertyID:   prop.ID,
			URL:          url,
			DisplayOrder: order,
		}
		if err := p.images.Create(ctx, img); err != nil {
			// The property row is already committed; losing one image
			// is not worth failing the row over.
			utils.Logger.WithError(err).Warnf("import: image insert failed for property %s", prop.ID)
		}
	}

	return prop.ID, nil
}

/* ------------------------------------------------------------------
   Report accumulation
------------------------------------------------------------------ */

func (r *Report) addSuccess(row int, id uuid.UUID, title string) {
	r.Summary.Success++
	r.Details = append(r.Details, Detail{
		Row:    row,
		Status: StatusSuccess,
		ID:     &id,
		Title:  title,
	})
}

func (r *Report) addDuplicate(row int, title string, dup *Duplicate) {
	r.Summary.Duplicates++
	r.Details = append(r.Details, Detail{
		Row:    row,
		Status: StatusDuplicate,
		Title:  title,
		URL:    dup.ConflictURL,
		Reason: dup.Reason,
	})
}

func (r *Report) addError(row int, reason string) {
	r.Summary.Errors++
	r.Details = append(r.Details, Detail{
		Row:    row,
		Status: StatusError,
		Error:  reason,
	})
}
