package app

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema bootstrap. Images cascade with their property; messages keep a
// nulled reference when the property goes away.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS properties (
        id                UUID PRIMARY KEY,
        title             TEXT NOT NULL,
        short_description TEXT NOT NULL DEFAULT '',
        description       TEXT NOT NULL DEFAULT '',
        price             BIGINT NOT NULL CHECK (price >= 0),
        rooms             INT NOT NULL DEFAULT 0,
        bathrooms         INT NOT NULL DEFAULT 0,
        garages           INT NOT NULL DEFAULT 0,
        square_meters     INT CHECK (square_meters >= 0),
        province          TEXT NOT NULL DEFAULT '',
        locality          TEXT NOT NULL DEFAULT '',
        street            TEXT NOT NULL DEFAULT '',
        number            TEXT NOT NULL DEFAULT '',
        kind              TEXT NOT NULL DEFAULT 'Vivienda',
        dwelling          TEXT NOT NULL DEFAULT 'Piso',
        condition         TEXT NOT NULL DEFAULT 'BuenEstado',
        floor             TEXT NOT NULL DEFAULT '',
        listing           TEXT NOT NULL DEFAULT 'Venta',
        sale_state        TEXT NOT NULL DEFAULT 'Disponible',
        features          TEXT[] NOT NULL DEFAULT '{}',
        published         BOOLEAN NOT NULL DEFAULT FALSE,
        published_at      TIMESTAMPTZ,
        source_url        TEXT,
        captured_by       TEXT,
        capture_pct       DOUBLE PRECISION,
        capture_date      TIMESTAMPTZ,
        owner_name        TEXT,
        owner_phone       TEXT,
        capture_notes     TEXT,
        created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,

	`CREATE INDEX IF NOT EXISTS idx_properties_source_url
        ON properties (source_url) WHERE source_url IS NOT NULL`,

	`CREATE INDEX IF NOT EXISTS idx_properties_published
        ON properties (published, published_at DESC)`,

	`CREATE TABLE IF NOT EXISTS property_images (
        id            UUID PRIMARY KEY,
        property_id   UUID NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
        url           TEXT NOT NULL,
        display_order INT NOT NULL DEFAULT 0,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,

	`CREATE INDEX IF NOT EXISTS idx_property_images_property
        ON property_images (property_id, display_order)`,

	`CREATE TABLE IF NOT EXISTS messages (
        id          UUID PRIMARY KEY,
        property_id UUID REFERENCES properties(id) ON DELETE SET NULL,
        name        TEXT NOT NULL,
        email       TEXT NOT NULL,
        phone       TEXT NOT NULL DEFAULT '',
        subject     TEXT NOT NULL DEFAULT '',
        body        TEXT NOT NULL,
        status      TEXT NOT NULL DEFAULT 'Nueva',
        pinned      BOOLEAN NOT NULL DEFAULT FALSE,
        received_at TIMESTAMPTZ NOT NULL,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,

	`CREATE INDEX IF NOT EXISTS idx_messages_status
        ON messages (status, pinned DESC, received_at DESC)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
