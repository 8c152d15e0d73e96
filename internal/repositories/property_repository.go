package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// PropertyFilter narrows the public catalog listing. Zero values mean
// "no constraint". Page is 1-based.
type PropertyFilter struct {
	Query    string
	Province string
	Locality string
	Dwelling models.DwellingType
	Listing  models.ListingType
	MinPrice int
	MaxPrice int
	MinRooms int
	Page     int
	PageSize int
}

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListPublished(ctx context.Context, f PropertyFilter) ([]*models.Property, int, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	// Duplicate-detection lookups used by the import pipeline.
	FindBySourceURL(ctx context.Context, sourceURL string) (*models.Property, error)
	FindByTitleAndLocality(ctx context.Context, normTitle, normLocality string) (*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, title, short_description, description, price,
            rooms, bathrooms, garages, square_meters,
            province, locality, street, number,
            kind, dwelling, condition, floor, listing, sale_state,
            features, published, published_at, source_url,
            captured_by, capture_pct, capture_date,
            owner_name, owner_phone, capture_notes,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
            $20,$21,$22,$23,$24,$25,$26,$27,$28,$29, NOW(), NOW()
        )
    `,
		p.ID,
		p.Title,
		p.ShortDescription,
		p.Description,
		p.Price,
		p.Rooms,
		p.Bathrooms,
		p.Garages,
		p.SquareMeters,
		p.Province,
		p.Locality,
		p.Street,
		p.Number,
		p.Kind,
		p.Dwelling,
		p.Condition,
		p.Floor,
		p.Listing,
		p.SaleState,
		p.Features,
		p.Published,
		p.PublishedAt,
		p.SourceURL,
		p.CapturedBy,
		p.CapturePct,
		p.CaptureDate,
		p.OwnerName,
		p.OwnerPhone,
		p.CaptureNotes,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListPublished(ctx context.Context, f PropertyFilter) ([]*models.Property, int, error) {
	where := []string{"published = TRUE"}
	args := []interface{}{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Query != "" {
		add("title ILIKE $%d", "%"+f.Query+"%")
	}
	if f.Province != "" {
		add("province ILIKE $%d", f.Province)
	}
	if f.Locality != "" {
		add("locality ILIKE $%d", f.Locality)
	}
	if f.Dwelling != "" {
		add("dwelling = $%d", f.Dwelling)
	}
	if f.Listing != "" {
		add("listing = $%d", f.Listing)
	}
	if f.MinPrice > 0 {
		add("price >= $%d", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		add("price <= $%d", f.MaxPrice)
	}
	if f.MinRooms > 0 {
		add("rooms >= $%d", f.MinRooms)
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM properties"+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	args = append(args, pageSize, (page-1)*pageSize)
	sql := baseSelectProperty() + whereClause +
		fmt.Sprintf(" ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d",
			len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (r *propertyRepo) FindBySourceURL(ctx context.Context, sourceURL string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE source_url=$1 LIMIT 1", sourceURL)
	return scanProperty(row)
}

// FindByTitleAndLocality compares against a lowercase, whitespace-collapsed
// rendering of both columns, mirroring importer.NormalizeKey.
func (r *propertyRepo) FindByTitleAndLocality(ctx context.Context, normTitle, normLocality string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+`
        WHERE lower(trim(regexp_replace(title, '\s+', ' ', 'g'))) = $1
          AND lower(trim(regexp_replace(locality, '\s+', ' ', 'g'))) = $2
        LIMIT 1
    `, normTitle, normLocality)
	return scanProperty(row)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET
            title=$1, short_description=$2, description=$3, price=$4,
            rooms=$5, bathrooms=$6, garages=$7, square_meters=$8,
            province=$9, locality=$10, street=$11, number=$12,
            kind=$13, dwelling=$14, condition=$15, floor=$16, listing=$17,
            sale_state=$18, features=$19, published=$20, published_at=$21,
            captured_by=$22, capture_pct=$23, capture_date=$24,
            owner_name=$25, owner_phone=$26, capture_notes=$27,
            updated_at=NOW()
        WHERE id=$28
    `,
		p.Title, p.ShortDescription, p.Description, p.Price,
		p.Rooms, p.Bathrooms, p.Garages, p.SquareMeters,
		p.Province, p.Locality, p.Street, p.Number,
		p.Kind, p.Dwelling, p.Condition, p.Floor, p.Listing,
		p.SaleState, p.Features, p.Published, p.PublishedAt,
		p.CapturedBy, p.CapturePct, p.CaptureDate,
		p.OwnerName, p.OwnerPhone, p.CaptureNotes,
		p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the property; property_images go with it via
// ON DELETE CASCADE and messages keep a nulled reference.
func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, title, short_description, description, price,
            rooms, bathrooms, garages, square_meters,
            province, locality, street, number,
            kind, dwelling, condition, floor, listing, sale_state,
            features, published, published_at, source_url,
            captured_by, capture_pct, capture_date,
            owner_name, owner_phone, capture_notes,
            created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.ShortDescription,
		&p.Description,
		&p.Price,
		&p.Rooms,
		&p.Bathrooms,
		&p.Garages,
		&p.SquareMeters,
		&p.Province,
		&p.Locality,
		&p.Street,
		&p.Number,
		&p.Kind,
		&p.Dwelling,
		&p.Condition,
		&p.Floor,
		&p.Listing,
		&p.SaleState,
		&p.Features,
		&p.Published,
		&p.PublishedAt,
		&p.SourceURL,
		&p.CapturedBy,
		&p.CapturePct,
		&p.CaptureDate,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.CaptureNotes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func collectProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
