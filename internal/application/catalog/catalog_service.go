package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

// CatalogService serves the public browsing endpoints
type CatalogService struct {
	categoryRepo catalog.CategoryRepository
	shopRepo     catalog.ShopRepository
	offerRepo    catalog.OfferRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo catalog.CategoryRepository,
	shopRepo catalog.ShopRepository,
	offerRepo catalog.OfferRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		shopRepo:     shopRepo,
		offerRepo:    offerRepo,
		logger:       logger,
	}
}

// ListCategories returns all categories, ordered by name
func (s *CatalogService) ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryInfo], error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]CategoryInfo, 0, len(categories))
	for i := range categories {
		infos = append(infos, NewCategoryInfo(&categories[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}

// ListShops returns shops currently accepting orders
func (s *CatalogService) ListShops(ctx context.Context, filter shared.Filter) (*shared.Paginated[ShopInfo], error) {
	shops, err := s.shopRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	activeOnly := filter
	if activeOnly.Fields == nil {
		activeOnly.Fields = map[string]string{}
	}
	activeOnly.Fields["state"] = "true"
	total, err := s.shopRepo.Count(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	infos := make([]ShopInfo, 0, len(shops))
	for i := range shops {
		infos = append(infos, NewShopInfo(&shops[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}

// ListProducts returns stocked offers from active shops
func (s *CatalogService) ListProducts(ctx context.Context, input ProductListInput, filter shared.Filter) (*shared.Paginated[OfferInfo], error) {
	offerFilter := catalog.OfferFilter{
		Filter:     filter,
		ShopID:     input.ShopID,
		CategoryID: input.CategoryID,
	}

	offers, err := s.offerRepo.FindAvailable(ctx, offerFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.offerRepo.CountAvailable(ctx, offerFilter)
	if err != nil {
		return nil, err
	}

	infos := make([]OfferInfo, 0, len(offers))
	for i := range offers {
		infos = append(infos, NewOfferInfo(&offers[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}
