// Package testutil provides in-memory repository fakes shared by the
// service- and pipeline-level unit tests.
package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
)

func normKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

/* ------------------------------------------------------------------
   FakePropertyRepository
------------------------------------------------------------------ */

type FakePropertyRepository struct {
	Props map[uuid.UUID]*models.Property
	order []uuid.UUID

	// CreateErrFor makes Create fail for a specific title, to exercise
	// the batch writer's partial-failure policy.
	CreateErrFor map[string]error
}

func NewFakePropertyRepository() *FakePropertyRepository {
	return &FakePropertyRepository{
		Props:        map[uuid.UUID]*models.Property{},
		CreateErrFor: map[string]error{},
	}
}

var _ repositories.PropertyRepository = (*FakePropertyRepository)(nil)

func (f *FakePropertyRepository) Create(_ context.Context, p *models.Property) error {
	if err := f.CreateErrFor[p.Title]; err != nil {
		return err
	}
	cp := *p
	f.Props[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

func (f *FakePropertyRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := f.Props[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *FakePropertyRepository) ListPublished(_ context.Context, filter repositories.PropertyFilter) ([]*models.Property, int, error) {
	var out []*models.Property
	for _, id := range f.order {
		p := f.Props[id]
		if !p.Published {
			continue
		}
		if filter.Locality != "" && !strings.EqualFold(p.Locality, filter.Locality) {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *FakePropertyRepository) ListAll(_ context.Context) ([]*models.Property, error) {
	var out []*models.Property
	for _, id := range f.order {
		cp := *f.Props[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *FakePropertyRepository) FindBySourceURL(_ context.Context, sourceURL string) (*models.Property, error) {
	for _, id := range f.order {
		p := f.Props[id]
		if p.SourceURL != nil && *p.SourceURL == sourceURL {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakePropertyRepository) FindByTitleAndLocality(_ context.Context, normTitle, normLocality string) (*models.Property, error) {
	for _, id := range f.order {
		p := f.Props[id]
		if normKey(p.Title) == normTitle && normKey(p.Locality) == normLocality {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakePropertyRepository) Update(_ context.Context, p *models.Property) error {
	if _, ok := f.Props[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	f.Props[p.ID] = &cp
	return nil
}

func (f *FakePropertyRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.Props[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.Props, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

/* ------------------------------------------------------------------
   FakePropertyImageRepository
------------------------------------------------------------------ */

type FakePropertyImageRepository struct {
	Images map[uuid.UUID]*models.PropertyImage
}

func NewFakePropertyImageRepository() *FakePropertyImageRepository {
	return &FakePropertyImageRepository{Images: map[uuid.UUID]*models.PropertyImage{}}
}

var _ repositories.PropertyImageRepository = (*FakePropertyImageRepository)(nil)

func (f *FakePropertyImageRepository) Create(_ context.Context, img *models.PropertyImage) error {
	cp := *img
	f.Images[img.ID] = &cp
	return nil
}

func (f *FakePropertyImageRepository) GetByID(_ context.Context, id uuid.UUID) (*models.PropertyImage, error) {
	img, ok := f.Images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (f *FakePropertyImageRepository) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.PropertyImage, error) {
	var out []*models.PropertyImage
	for _, img := range f.Images {
		if img.PropertyID == propertyID {
			cp := *img
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *FakePropertyImageRepository) NextDisplayOrder(ctx context.Context, propertyID uuid.UUID) (int, error) {
	imgs, _ := f.ListByPropertyID(ctx, propertyID)
	next := 0
	for _, img := range imgs {
		if img.DisplayOrder >= next {
			next = img.DisplayOrder + 1
		}
	}
	return next, nil
}

func (f *FakePropertyImageRepository) ReplaceOrder(_ context.Context, propertyID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		img, ok := f.Images[id]
		if !ok || img.PropertyID != propertyID {
			return pgx.ErrNoRows
		}
		img.DisplayOrder = i
	}
	return nil
}

func (f *FakePropertyImageRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.Images[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.Images, id)
	return nil
}

/* ------------------------------------------------------------------
   FakeMessageRepository
------------------------------------------------------------------ */

type FakeMessageRepository struct {
	Messages map[uuid.UUID]*models.Message
	order    []uuid.UUID
}

func NewFakeMessageRepository() *FakeMessageRepository {
	return &FakeMessageRepository{Messages: map[uuid.UUID]*models.Message{}}
}

var _ repositories.MessageRepository = (*FakeMessageRepository)(nil)

func (f *FakeMessageRepository) Create(_ context.Context, m *models.Message) error {
	cp := *m
	f.Messages[m.ID] = &cp
	f.order = append(f.order, m.ID)
	return nil
}

func (f *FakeMessageRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Message, error) {
	m, ok := f.Messages[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *FakeMessageRepository) List(_ context.Context, status *models.MessageStatusType) ([]*models.Message, error) {
	var out []*models.Message
	for _, id := range f.order {
		m := f.Messages[id]
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out, nil
}

func (f *FakeMessageRepository) UpdateStatus(_ context.Context, id uuid.UUID, status models.MessageStatusType) error {
	m, ok := f.Messages[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Status = status
	return nil
}

func (f *FakeMessageRepository) SetPinned(_ context.Context, id uuid.UUID, pinned bool) error {
	m, ok := f.Messages[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Pinned = pinned
	return nil
}

func (f *FakeMessageRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.Messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.Messages, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}
