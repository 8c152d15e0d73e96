package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed marks structural failures: the upload as a whole is
// unusable and nothing gets persisted. Row-level problems never wrap it.
var ErrMalformed = errors.New("malformed import payload")

// Headers the CSV variant must carry. Column order is free; matching is
// by (case-insensitive) name.
var requiredCSVHeaders = []string{"titulo", "precio", "ubicacion", "url"}

const imageSeparator = "|"

// ParseCSV reads an uploaded CSV file into raw rows, preserving input
// order. The first record must be a header row naming at least the
// required columns.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, h := range requiredCSVHeaders {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, h)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := RawRow{
			Titulo:        field(rec, "titulo"),
			Precio:        field(rec, "precio"),
			Ubicacion:     field(rec, "ubicacion"),
			Habitaciones:  field(rec, "habitaciones"),
			Metros:        field(rec, "metros"),
			URL:           field(rec, "url"),
			Descripcion:   field(rec, "descripcion"),
			Anunciante:    field(rec, "anunciante"),
			FechaScraping: field(rec, "fecha_scraping"),
		}
		if imgs := field(rec, "imagenes"); imgs != "" {
			for _, u := range strings.Split(imgs, imageSeparator) {
				if u = strings.TrimSpace(u); u != "" {
					row.Imagenes = append(row.Imagenes, u)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

/* ------------------------------------------------------------------
   JSON variant
------------------------------------------------------------------ */

// flexString tolerates scraped JSON carrying numbers where this catalog
// expects text ("precio": 240000 vs "precio": "240.000 €").
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type jsonRow struct {
	Titulo        flexString `json:"titulo"`
	Precio        flexString `json:"precio"`
	Ubicacion     flexString `json:"ubicacion"`
	Habitaciones  flexString `json:"habitaciones"`
	Metros        flexString `json:"metros"`
	URL           string     `json:"url"`
	Descripcion   string     `json:"descripcion"`
	Anunciante    string     `json:"anunciante"`
	FechaScraping string     `json:"fecha_scraping"`
	Imagenes      []string   `json:"imagenes"`
}

type jsonEnvelope struct {
	Timestamp     string     `json:"timestamp"`
	URL           string     `json:"url"`
	Total         int        `json:"total"`
	Particulares  flexString `json:"particulares"`
	Inmobiliarias flexString `json:"inmobiliarias"`
	Viviendas     *struct {
		Todas []jsonRow `json:"todas"`
	} `json:"viviendas"`
}

// ParseJSON reads the scraper envelope
// { timestamp, url, total, particulares, inmobiliarias, viviendas: { todas: [...] } }
// and returns the rows plus the echoed metadata.
func ParseJSON(r io.Reader) ([]RawRow, *Metadata, error) {
	var env jsonEnvelope
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Viviendas == nil {
		return nil, nil, fmt.Errorf("%w: missing viviendas.todas", ErrMalformed)
	}
	if len(env.Viviendas.Todas) == 0 {
		return nil, nil, fmt.Errorf("%w: viviendas.todas is empty", ErrMalformed)
	}

	// Spot-check the first row; a payload whose shape is this far off is
	// a structural problem, not a row-level one.
	first := env.Viviendas.Todas[0]
	if first.Titulo == "" || first.Precio == "" || first.Ubicacion == "" || first.URL == "" {
		return nil, nil, fmt.Errorf("%w: first row is missing required fields (titulo/precio/ubicacion/url)", ErrMalformed)
	}

	rows := make([]RawRow, 0, len(env.Viviendas.Todas))
	for _, jr := range env.Viviendas.Todas {
		rows = append(rows, RawRow{
			Titulo:        string(jr.Titulo),
			Precio:        string(jr.Precio),
			Ubicacion:     string(jr.Ubicacion),
			Habitaciones:  string(jr.Habitaciones),
			Metros:        string(jr.Metros),
			URL:           jr.URL,
			Descripcion:   jr.Descripcion,
			Anunciante:    jr.Anunciante,
			FechaScraping: jr.FechaScraping,
			Imagenes:      jr.Imagenes,
		})
	}

	meta := &Metadata{
		Timestamp:     env.Timestamp,
		URL:           env.URL,
		Total:         env.Total,
		Particulares:  atoiOrZero(string(env.Particulares)),
		Inmobiliarias: atoiOrZero(string(env.Inmobiliarias)),
	}
	return rows, meta, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
