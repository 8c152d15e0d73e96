package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	// List returns pinned messages first, newest first within each group.
	// status is optional.
	List(ctx context.Context, status *models.MessageStatusType) ([]*models.Message, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatusType) error
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type messageRepo struct {
	db DB
}

func NewMessageRepository(db DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *models.Message) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO messages (
            id, property_id, name, email, phone, subject, body,
            status, pinned, received_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
    `,
		m.ID,
		m.PropertyID,
		m.Name,
		m.Email,
		m.Phone,
		m.Subject,
		m.Body,
		m.Status,
		m.Pinned,
		m.ReceivedAt,
	)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	row := r.db.QueryRow(ctx, baseSelectMessage()+" WHERE id=$1", id)
	return scanMessage(row)
}

func (r *messageRepo) List(ctx context.Context, status *models.MessageStatusType) ([]*models.Message, error) {
	sql := baseSelectMessage()
	args := []interface{}{}
	if status != nil {
		sql += " WHERE status=$1"
		args = append(args, *status)
	}
	sql += " ORDER BY pinned DESC, received_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatusType) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE messages SET status=$1, updated_at=NOW() WHERE id=$2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepo) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE messages SET pinned=$1, updated_at=NOW() WHERE id=$2
    `, pinned, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectMessage() string {
	return `
        SELECT
            id, property_id, name, email, phone, subject, body,
            status, pinned, received_at, created_at, updated_at
        FROM messages
    `
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID,
		&m.PropertyID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Subject,
		&m.Body,
		&m.Status,
		&m.Pinned,
		&m.ReceivedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
