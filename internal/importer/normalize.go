package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var leadingDigits = regexp.MustCompile(`\d+`)

// Normalize turns a raw row into a typed Candidate, or a RowError that
// is folded into the report without stopping the batch. The policy is
// deliberately lenient: only a missing title or an unusable price kills
// a row; everything else degrades to a default.
func Normalize(raw RawRow, row int) (*Candidate, *RowError) {
	title := strings.TrimSpace(raw.Titulo)
	if title == "" {
		return nil, &RowError{Row: row, Reason: "missing title"}
	}

	price, ok := ParsePrice(raw.Precio)
	if !ok {
		return nil, &RowError{Row: row, Reason: "unparseable price: " + strings.TrimSpace(raw.Precio)}
	}

	locality, province := SplitLocation(raw.Ubicacion)

	c := &Candidate{
		Row:          row,
		Title:        title,
		Price:        price,
		Locality:     locality,
		Province:     province,
		Rooms:        leadingInt(raw.Habitaciones, 0),
		SquareMeters: leadingIntPtr(raw.Metros),
		Description:  strings.TrimSpace(raw.Descripcion),
		Advertiser:   strings.TrimSpace(raw.Anunciante),
		SourceURL:    strings.TrimSpace(raw.URL),
		ScrapedAt:    parseScrapeTime(raw.FechaScraping),
		ImageURLs:    raw.Imagenes,
	}
	return c, nil
}

// ParsePrice strips currency symbols and thousands separators from a
// free-text price ("240.000 €" -> 240000). ok is false for empty,
// non-numeric or non-positive values.
func ParsePrice(s string) (int, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// SplitLocation splits "Igualada, Barcelona" into locality and
// province. With no comma the whole text becomes the locality; the
// split never fails a row.
func SplitLocation(s string) (locality, province string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ","); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// NormalizeKey lowercases and collapses whitespace, producing the form
// both the detector and the catalog lookup compare on.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func leadingInt(s string, def int) int {
	m := leadingDigits.FindString(s)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

func leadingIntPtr(s string) *int {
	m := leadingDigits.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

var scrapeTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parseScrapeTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range scrapeTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
