package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

var _ catalog.ShopRepository = (*GormShopRepository)(nil)

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByUser finds the shop owned by a user
func (r *GormShopRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindActive finds shops currently accepting orders
func (r *GormShopRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	var shops []catalog.Shop
	query := applyFilter(
		r.applySearch(r.db.WithContext(ctx).Model(&catalog.Shop{}).Where("state = ?", true), filter),
		filter,
		"name", "created_at",
	)
	if err := query.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// FindAll finds shops with filtering
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	var shops []catalog.Shop
	query := applyFilter(
		r.applySearch(r.db.WithContext(ctx).Model(&catalog.Shop{}), filter),
		filter,
		"name", "created_at",
	)
	if err := query.Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormShopRepository) SaveWithLock(ctx context.Context, shop *catalog.Shop) error {
	currentVersion := shop.Version
	shop.Version++
	shop.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&catalog.Shop{}).
		Where("id = ? AND version = ?", shop.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":       shop.Name,
			"url":        shop.URL,
			"state":      shop.State,
			"version":    shop.Version,
			"updated_at": shop.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts shops matching the filter
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&catalog.Shop{}), filter)
	if state, ok := filter.Fields["state"]; ok {
		query = query.Where("state = ?", state == "true")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShopRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	return query
}
