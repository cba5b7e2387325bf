package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// FindByID finds an order with items, offers and products preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Offer.Product").
		Preload("Items.Offer.Shop").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBasket finds the user's basket order
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Offer.Product").
		Preload("Items.Offer.Shop").
		Where("user_id = ? AND status = ?", userID, ordering.OrderStatusBasket).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByUser finds the user's placed orders
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(
		r.placedQuery(ctx, filter).Where("user_id = ?", userID),
		filter,
		"created_at", "status", "updated_at",
	)
	if filter.OrderBy == "" {
		query = query.Order("created_at DESC")
	}
	if err := query.
		Preload("Items.Offer.Product").
		Preload("Items.Offer.Shop").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByShop finds placed orders containing the shop's offers
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(
		r.shopQuery(ctx, shopID, filter),
		filter,
		"orders.created_at", "orders.status",
	)
	if filter.OrderBy == "" {
		query = query.Order("orders.created_at DESC")
	}
	if err := query.
		Distinct("orders.*").
		Preload("Items.Offer.Product").
		Preload("Items.Offer.Shop").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds placed orders with filtering
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := applyFilter(
		r.placedQuery(ctx, filter),
		filter,
		"created_at", "status", "updated_at",
	)
	if filter.OrderBy == "" {
		query = query.Order("created_at DESC")
	}
	if err := query.
		Preload("Items.Offer.Product").
		Preload("Items.Offer.Shop").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ContainsShopOffers reports whether the order has lines from the shop
func (r *GormOrderRepository) ContainsShopOffers(ctx context.Context, orderID, shopID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.OrderItem{}).
		Joins("JOIN offers ON offers.id = order_items.offer_id").
		Where("order_items.order_id = ? AND offers.shop_id = ?", orderID, shopID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order, syncing its item rows
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		return syncOrderItems(tx, order)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := order.Version
		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&ordering.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":     order.Status,
				"contact_id": order.ContactID,
				"version":    order.Version,
				"updated_at": order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return syncOrderItems(tx, order)
	})
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ordering.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByUser counts the user's placed orders
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("user_id = ? AND status <> ?", userID, ordering.OrderStatusBasket).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByShop counts placed orders containing the shop's offers
func (r *GormOrderRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.shopQuery(ctx, shopID, shared.Filter{}).
		Distinct("orders.id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts placed orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.placedQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// placedQuery restricts orders to those past checkout
func (r *GormOrderRepository) placedQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Where("status <> ?", ordering.OrderStatusBasket)
	if status, ok := filter.Fields["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// shopQuery restricts placed orders to those with lines from the shop
func (r *GormOrderRepository) shopQuery(ctx context.Context, shopID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN offers ON offers.id = order_items.offer_id").
		Where("offers.shop_id = ?", shopID).
		Where("orders.status <> ?", ordering.OrderStatusBasket)
	if status, ok := filter.Fields["status"]; ok {
		query = query.Where("orders.status = ?", status)
	}
	return query
}

// syncOrderItems deletes rows removed from the aggregate and upserts
// the ones it still carries
func syncOrderItems(tx *gorm.DB, order *ordering.Order) error {
	currentItemIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
			Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&ordering.OrderItem{}).Error; err != nil {
			return err
		}
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := tx.Omit(clause.Associations).Save(&order.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
