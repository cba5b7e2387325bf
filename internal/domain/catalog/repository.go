package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByUser finds the shop owned by a user
	FindByUser(ctx context.Context, userID uuid.UUID) (*Shop, error)

	// FindActive finds shops currently accepting orders
	FindActive(ctx context.Context, filter shared.Filter) ([]Shop, error)

	// FindAll finds shops with filtering, for admin listings
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, shop *Shop) error

	// Count counts shops matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindAll finds categories ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// OfferFilter narrows offer listings beyond the shared filter
type OfferFilter struct {
	shared.Filter
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// OfferRepository defines the interface for offer persistence
type OfferRepository interface {
	// FindByID finds an offer with its product, shop and parameters
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)

	// FindByIDs finds offers by id, preloading product and shop
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Offer, error)

	// FindAvailable finds offers from active shops with filtering
	FindAvailable(ctx context.Context, filter OfferFilter) ([]Offer, error)

	// CountAvailable counts offers from active shops matching the filter
	CountAvailable(ctx context.Context, filter OfferFilter) (int64, error)
}

// PriceListRepository defines the transactional import/export of a shop's catalog
type PriceListRepository interface {
	// Import wholesale-replaces the shop's offers from the document
	// Categories and products are upserted, prior offers of the shop deleted
	Import(ctx context.Context, shop *Shop, doc *PriceList) error

	// Export builds the inverse projection of the shop's current offers
	Export(ctx context.Context, shop *Shop) (*PriceList, error)
}
