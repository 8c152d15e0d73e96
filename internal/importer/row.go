// Package importer implements the bulk CSV/JSON import pipeline that
// feeds externally-scraped listings into the catalog: parse, normalize,
// duplicate-detect, persist, report.
package importer

import (
	"time"

	"github.com/google/uuid"
)

// RawRow is one input row exactly as the upload carried it. Everything
// is text at this point; typing happens in Normalize.
type RawRow struct {
	Titulo        string   `json:"titulo"`
	Precio        string   `json:"precio"`
	Ubicacion     string   `json:"ubicacion"`
	Habitaciones  string   `json:"habitaciones"`
	Metros        string   `json:"metros"`
	URL           string   `json:"url"`
	Descripcion   string   `json:"descripcion"`
	Anunciante    string   `json:"anunciante"`
	FechaScraping string   `json:"fecha_scraping"`
	Imagenes      []string `json:"imagenes,omitempty"`
}

// Candidate is a normalized row ready for duplicate detection and
// persistence. Row is the 1-based input position and ends up in the
// report unchanged.
type Candidate struct {
	Row          int
	Title        string
	Price        int
	Locality     string
	Province     string
	Rooms        int
	SquareMeters *int
	Description  string
	Advertiser   string
	SourceURL    string
	ScrapedAt    *time.Time
	ImageURLs    []string
}

// RowError isolates a bad row without aborting the batch.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return e.Reason
}

type RowStatus string

const (
	StatusSuccess   RowStatus = "success"
	StatusDuplicate RowStatus = "duplicate"
	StatusError     RowStatus = "error"
)

// Detail is one report entry; which optional fields are set depends on
// Status (id/title for success, title/url/reason for duplicate,
// error for error).
type Detail struct {
	Row    int        `json:"row"`
	Status RowStatus  `json:"status"`
	ID     *uuid.UUID `json:"id,omitempty"`
	Title  string     `json:"title,omitempty"`
	URL    string     `json:"url,omitempty"`
	Reason string     `json:"reason,omitempty"`
	Error  string     `json:"error,omitempty"`
}

type Summary struct {
	Success    int `json:"success"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// Metadata echoes the JSON import envelope back to the administrator.
type Metadata struct {
	Timestamp     string `json:"timestamp,omitempty"`
	URL           string `json:"url,omitempty"`
	Total         int    `json:"total"`
	Particulares  int    `json:"particulares"`
	Inmobiliarias int    `json:"inmobiliarias"`
}

// Report is the sole output of one pipeline run. It is returned to the
// caller and never persisted.
type Report struct {
	Summary  Summary   `json:"summary"`
	Details  []Detail  `json:"details"`
	Metadata *Metadata `json:"metadata,omitempty"`
}
