package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

// GormOfferRepository implements OfferRepository using GORM
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

var _ catalog.OfferRepository = (*GormOfferRepository)(nil)

// FindByID finds an offer with its product, shop and parameters
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Offer, error) {
	var offer catalog.Offer
	if err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters.Parameter").
		First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// FindByIDs finds offers by id, preloading product and shop
func (r *GormOfferRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Offer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var offers []catalog.Offer
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Where("id IN ?", ids).
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindAvailable finds offers from active shops with filtering
func (r *GormOfferRepository) FindAvailable(ctx context.Context, filter catalog.OfferFilter) ([]catalog.Offer, error) {
	var offers []catalog.Offer
	query := applyFilter(
		r.availableQuery(ctx, filter),
		filter.Filter,
		"offers.price", "offers.model", "offers.created_at",
	)
	if err := query.
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters.Parameter").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// CountAvailable counts offers from active shops matching the filter
func (r *GormOfferRepository) CountAvailable(ctx context.Context, filter catalog.OfferFilter) (int64, error) {
	var count int64
	if err := r.availableQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// availableQuery restricts offers to stocked positions of shops that
// are accepting orders
func (r *GormOfferRepository) availableQuery(ctx context.Context, filter catalog.OfferFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.Offer{}).
		Joins("JOIN shops ON shops.id = offers.shop_id").
		Joins("JOIN products ON products.id = offers.product_id").
		Where("shops.state = ?", true).
		Where("offers.quantity > 0")

	if filter.ShopID != nil {
		query = query.Where("offers.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(offers.model) LIKE ?", pattern, pattern)
	}
	return query
}
