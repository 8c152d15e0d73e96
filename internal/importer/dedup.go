package importer

import (
	"context"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
)

const (
	ReasonSameSourceURL    = "same source URL"
	ReasonSameTitleAndCity = "same title and location"
)

// Duplicate is a classification outcome, not an error.
type Duplicate struct {
	Reason      string
	ConflictURL string
}

// Rule is one detection strategy. The detector runs its rules in
// order, so URL matching keeps precedence over the title+location
// heuristic as a visible artifact rather than buried conditionals.
type Rule interface {
	Name() string
	Check(ctx context.Context, c *Candidate) (*Duplicate, error)
}

/* ------------------------------------------------------------------
   Batch-local index

   Rows accepted earlier in the same upload are also duplicate
   candidates. Persisted-catalog lookups alone would let two identical
   rows in one file both insert.
------------------------------------------------------------------ */

type batchIndex struct {
	urls     map[string]struct{}
	titleLoc map[string]string // normalized title+locality key -> source url
}

func newBatchIndex() *batchIndex {
	return &batchIndex{
		urls:     make(map[string]struct{}),
		titleLoc: make(map[string]string),
	}
}

func titleLocKey(title, locality string) string {
	return NormalizeKey(title) + "\x00" + NormalizeKey(locality)
}

func (b *batchIndex) add(c *Candidate) {
	if c.SourceURL != "" {
		b.urls[c.SourceURL] = struct{}{}
	}
	b.titleLoc[titleLocKey(c.Title, c.Locality)] = c.SourceURL
}

/* ------------------------------------------------------------------
   Rules
------------------------------------------------------------------ */

type sourceURLRule struct {
	props repositories.PropertyRepository
	batch *batchIndex
}

func (r *sourceURLRule) Name() string { return "source-url" }

func (r *sourceURLRule) Check(ctx context.Context, c *Candidate) (*Duplicate, error) {
	if c.SourceURL == "" {
		return nil, nil
	}
	if _, ok := r.batch.urls[c.SourceURL]; ok {
		return &Duplicate{Reason: ReasonSameSourceURL, ConflictURL: c.SourceURL}, nil
	}
	existing, err := r.props.FindBySourceURL(ctx, c.SourceURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &Duplicate{Reason: ReasonSameSourceURL, ConflictURL: c.SourceURL}, nil
	}
	return nil, nil
}

type titleLocalityRule struct {
	props repositories.PropertyRepository
	batch *batchIndex
}

func (r *titleLocalityRule) Name() string { return "title-locality" }

func (r *titleLocalityRule) Check(ctx context.Context, c *Candidate) (*Duplicate, error) {
	if url, ok := r.batch.titleLoc[titleLocKey(c.Title, c.Locality)]; ok {
		return &Duplicate{Reason: ReasonSameTitleAndCity, ConflictURL: url}, nil
	}
	existing, err := r.props.FindByTitleAndLocality(ctx, NormalizeKey(c.Title), NormalizeKey(c.Locality))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		conflictURL := ""
		if existing.SourceURL != nil {
			conflictURL = *existing.SourceURL
		}
		return &Duplicate{Reason: ReasonSameTitleAndCity, ConflictURL: conflictURL}, nil
	}
	return nil, nil
}

/* ------------------------------------------------------------------
   Detector
------------------------------------------------------------------ */

// Detector classifies candidates against the pre-batch catalog
// snapshot plus the rows this batch has already accepted. Read-only
// against the catalog.
type Detector struct {
	rules []Rule
	batch *batchIndex
}

func NewDetector(props repositories.PropertyRepository) *Detector {
	batch := newBatchIndex()
	return &Detector{
		batch: batch,
		rules: []Rule{
			&sourceURLRule{props: props, batch: batch},
			&titleLocalityRule{props: props, batch: batch},
		},
	}
}

// Detect returns nil when the candidate is new.
func (d *Detector) Detect(ctx context.Context, c *Candidate) (*Duplicate, error) {
	for _, rule := range d.rules {
		dup, err := rule.Check(ctx, c)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return dup, nil
		}
	}
	return nil, nil
}

// Accept registers a candidate the writer just committed, so later
// rows in the same batch see it.
func (d *Detector) Accept(c *Candidate) {
	d.batch.add(c)
}
