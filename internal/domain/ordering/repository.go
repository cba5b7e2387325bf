package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with items, offers and products preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindBasket finds the user's basket order, ErrNotFound when absent
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindByUser finds the user's placed (non-basket) orders
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByShop finds placed orders containing the shop's offers
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds placed orders with filtering, for admin listings
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// ContainsShopOffers reports whether the order has lines from the shop
	ContainsShopOffers(ctx context.Context, orderID, shopID uuid.UUID) (bool, error)

	// Save creates or updates an order, syncing its item rows
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser counts the user's placed orders
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountByShop counts placed orders containing the shop's offers
	CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error)

	// Count counts placed orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
