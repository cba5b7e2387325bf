package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.Contact{},
		&identity.ConfirmEmailToken{},
		&catalog.Shop{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Parameter{},
		&catalog.Offer{},
		&catalog.OfferParameter{},
		&ordering.Order{},
		&ordering.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, userType identity.UserType) *identity.User {
	t.Helper()

	user := &identity.User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      "not-a-real-hash",
		FirstName:         "Ivan",
		LastName:          "Petrov",
		Type:              userType,
		IsActive:          true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedShop(t *testing.T, db *gorm.DB, name string, state bool) *catalog.Shop {
	t.Helper()

	owner := seedUser(t, db, name+"@supplier.test", identity.UserTypeShop)
	shop, err := catalog.NewShop(owner.ID, name, "")
	require.NoError(t, err)
	shop.State = state
	require.NoError(t, db.Create(shop).Error)
	return shop
}

// seedOffer creates a category, product and stocked offer for the shop
func seedOffer(t *testing.T, db *gorm.DB, shop *catalog.Shop, externalID int, name string, price int64, quantity int) *catalog.Offer {
	t.Helper()

	var category catalog.Category
	err := db.Where("external_id = ?", 100).First(&category).Error
	if err != nil {
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		created, err := catalog.NewCategory(100, "Smartphones")
		require.NoError(t, err)
		require.NoError(t, db.Create(created).Error)
		category = *created
	}

	product, err := catalog.NewProduct(name, category.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	offer, err := catalog.NewOffer(shop.ID, product.ID, externalID, "test-model",
		decimal.NewFromInt(price), decimal.NewFromInt(price+1000), quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(offer).Error)
	offer.Product = product
	offer.Shop = shop
	return offer
}

func seedBasket(t *testing.T, db *gorm.DB, userID uuid.UUID, offers ...*catalog.Offer) *ordering.Order {
	t.Helper()

	basket, err := ordering.NewBasket(userID)
	require.NoError(t, err)
	for _, offer := range offers {
		require.NoError(t, basket.AddItem(offer, 1))
	}
	repo := NewGormOrderRepository(db)
	require.NoError(t, repo.Save(context.Background(), basket))
	return basket
}
