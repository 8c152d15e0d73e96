package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/dtos"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

const publicListTTL = 30 * time.Second

type PropertyService struct {
	propRepo  repositories.PropertyRepository
	imageRepo repositories.PropertyImageRepository
	cache     utils.CacheService
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	imageRepo repositories.PropertyImageRepository,
	cache utils.CacheService,
) *PropertyService {
	return &PropertyService{
		propRepo:  propRepo,
		imageRepo: imageRepo,
		cache:     cache,
	}
}

/* ------------------------------------------------------------------
   Public catalog
------------------------------------------------------------------ */

// ListPublic returns published properties for the given filter. Results
// are memoized for a short TTL; every admin write clears the cache.
func (s *PropertyService) ListPublic(ctx context.Context, f repositories.PropertyFilter) (*dtos.PropertyListResponse, error) {
	key := listCacheKey(f)
	if cached, ok := s.cache.Get(key); ok {
		if resp, ok := cached.(*dtos.PropertyListResponse); ok {
			return resp, nil
		}
	}

	props, total, err := s.propRepo.ListPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("could not list properties: %w", err)
	}

	for _, p := range props {
		imgs, err := s.imageRepo.ListByPropertyID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("could not load images for property %s: %w", p.ID, err)
		}
		p.Images = deref(imgs)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	resp := &dtos.PropertyListResponse{
		Results:  props,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	s.cache.Set(key, resp, publicListTTL)
	return resp, nil
}

// GetPublic returns one published property with its ordered images.
func (s *PropertyService) GetPublic(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Published {
		return nil, utils.ErrPropertyNotFound
	}
	imgs, err := s.imageRepo.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = deref(imgs)
	return p, nil
}

/* ------------------------------------------------------------------
   Admin CRUD
------------------------------------------------------------------ */

func (s *PropertyService) ListAll(ctx context.Context) ([]*models.Property, error) {
	return s.propRepo.ListAll(ctx)
}

func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPropertyNotFound
	}
	imgs, err := s.imageRepo.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = deref(imgs)
	return p, nil
}

func (s *PropertyService) Create(ctx context.Context, req *dtos.PropertyUpsertRequest) (*models.Property, error) {
	p := &models.Property{ID: uuid.New()}
	if err := applyUpsert(p, req); err != nil {
		return nil, err
	}
	if p.Published {
		p.PublishedAt = utils.Ptr(time.Now().UTC())
	}

	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("could not create property: %w", err)
	}
	s.cache.Clear()
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req *dtos.PropertyUpsertRequest) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPropertyNotFound
	}

	wasPublished := p.Published
	if err := applyUpsert(p, req); err != nil {
		return nil, err
	}
	// publishedAt is stamped on the first transition to published and
	// kept afterwards.
	if p.Published && !wasPublished && p.PublishedAt == nil {
		p.PublishedAt = utils.Ptr(time.Now().UTC())
	}

	if err := s.propRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("could not update property: %w", err)
	}
	s.cache.Clear()
	return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return utils.ErrPropertyNotFound
	}
	if err := s.propRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete property: %w", err)
	}
	s.cache.Clear()
	return nil
}

/* ------------------------------------------------------------------
   Images
------------------------------------------------------------------ */

func (s *PropertyService) AddImage(ctx context.Context, propertyID uuid.UUID, url string) (*models.PropertyImage, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPropertyNotFound
	}

	order, err := s.imageRepo.NextDisplayOrder(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	img := &models.PropertyImage{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		URL:          url,
		DisplayOrder: order,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("could not create image: %w", err)
	}
	s.cache.Clear()
	return img, nil
}

// ReorderImages rewrites display order following the given sequence.
// The sequence must name every image of the property exactly once.
func (s *PropertyService) ReorderImages(ctx context.Context, propertyID uuid.UUID, orderedIDs []uuid.UUID) error {
	existing, err := s.imageRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return err
	}
	if len(existing) != len(orderedIDs) {
		return utils.ErrOrderMismatch
	}
	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, img := range existing {
		known[img.ID] = struct{}{}
	}
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return utils.ErrOrderMismatch
		}
		delete(known, id)
	}

	if err := s.imageRepo.ReplaceOrder(ctx, propertyID, orderedIDs); err != nil {
		return fmt.Errorf("could not reorder images: %w", err)
	}
	s.cache.Clear()
	return nil
}

func (s *PropertyService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return utils.ErrImageNotFound
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}
	s.cache.Clear()
	return nil
}

/* ------------------------------------------------------------------
   internals
------------------------------------------------------------------ */

func applyUpsert(p *models.Property, req *dtos.PropertyUpsertRequest) error {
	p.Title = req.Title
	p.ShortDescription = req.ShortDescription
	p.Description = req.Description
	p.Price = req.Price
	p.Rooms = req.Rooms
	p.Bathrooms = req.Bathrooms
	p.Garages = req.Garages
	p.SquareMeters = req.SquareMeters
	p.Province = req.Province
	p.Locality = req.Locality
	p.Street = req.Street
	p.Number = req.Number
	p.Features = req.Features
	p.Published = req.Published

	p.Kind = models.PropertyKind(defaultStr(req.Kind, string(models.PropertyKindVivienda)))
	p.Dwelling = models.DwellingType(defaultStr(req.Dwelling, string(models.DwellingPiso)))
	p.Condition = models.ConditionType(defaultStr(req.Condition, string(models.ConditionBuenEstado)))
	p.Floor = models.FloorType(req.Floor)
	p.Listing = models.ListingType(defaultStr(req.Listing, string(models.ListingVenta)))

	saleState := models.SaleStateType(defaultStr(req.SaleState, string(models.SaleStateDisponible)))
	if !models.ValidSaleState(saleState) {
		return utils.ErrInvalidSaleState
	}
	p.SaleState = saleState

	p.CapturedBy = req.CapturedBy
	p.CapturePct = req.CapturePct
	p.CaptureDate = req.CaptureDate
	p.OwnerName = req.OwnerName
	p.OwnerPhone = req.OwnerPhone
	p.CaptureNotes = req.CaptureNotes
	return nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func listCacheKey(f repositories.PropertyFilter) string {
	return fmt.Sprintf("properties:%s|%s|%s|%s|%s|%d|%d|%d|%d|%d",
		f.Query, f.Province, f.Locality, f.Dwelling, f.Listing,
		f.MinPrice, f.MaxPrice, f.MinRooms, f.Page, f.PageSize)
}

func deref(imgs []*models.PropertyImage) []models.PropertyImage {
	out := make([]models.PropertyImage, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, *img)
	}
	return out
}
