package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyImageRepository interface {
	Create(ctx context.Context, img *models.PropertyImage) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyImage, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyImage, error)
	NextDisplayOrder(ctx context.Context, propertyID uuid.UUID) (int, error)

	// ReplaceOrder rewrites display_order to 0..n-1 following the given
	// id sequence. All ids must belong to propertyID.
	ReplaceOrder(ctx context.Context, propertyID uuid.UUID, orderedIDs []uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyImageRepo struct {
	db DB
}

func NewPropertyImageRepository(db DB) PropertyImageRepository {
	return &propertyImageRepo{db: db}
}

func (r *propertyImageRepo) Create(ctx context.Context, img *models.PropertyImage) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_images (id, property_id, url, display_order, created_at)
        VALUES ($1,$2,$3,$4, NOW())
    `,
		img.ID,
		img.PropertyID,
		img.URL,
		img.DisplayOrder,
	)
	return err
}

func (r *propertyImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyImage, error) {
	row := r.db.QueryRow(ctx, baseSelectPropertyImage()+" WHERE id=$1", id)
	return scanPropertyImage(row)
}

func (r *propertyImageRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyImage, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPropertyImage()+" WHERE property_id=$1 ORDER BY display_order, created_at",
		propertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyImage
	for rows.Next() {
		img, err := scanPropertyImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *propertyImageRepo) NextDisplayOrder(ctx context.Context, propertyID uuid.UUID) (int, error) {
	var next int
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(MAX(display_order)+1, 0)
        FROM property_images WHERE property_id=$1
    `, propertyID).Scan(&next)
	return next, err
}

func (r *propertyImageRepo) ReplaceOrder(ctx context.Context, propertyID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		tag, err := r.db.Exec(ctx, `
            UPDATE property_images SET display_order=$1
            WHERE id=$2 AND property_id=$3
        `, i, id, propertyID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("image %s does not belong to property %s: %w", id, propertyID, pgx.ErrNoRows)
		}
	}
	return nil
}

func (r *propertyImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM property_images WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectPropertyImage() string {
	return `
        SELECT id, property_id, url, display_order, created_at
        FROM property_images
    `
}

func scanPropertyImage(row pgx.Row) (*models.PropertyImage, error) {
	var img models.PropertyImage
	err := row.Scan(
		&img.ID,
		&img.PropertyID,
		&img.URL,
		&img.DisplayOrder,
		&img.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}
