package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

func TestGormOfferRepository_FindAvailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOfferRepository(db)
	ctx := context.Background()

	active := seedShop(t, db, "Svyaznoy", true)
	closed := seedShop(t, db, "Euroset", false)

	stocked := seedOffer(t, db, active, 1, "iPhone 15", 50000, 10)
	seedOffer(t, db, active, 2, "iPhone 15 Pro", 70000, 0)
	seedOffer(t, db, closed, 1, "Galaxy S24", 45000, 10)

	t.Run("hides closed shops and empty stock", func(t *testing.T) {
		offers, err := repo.FindAvailable(ctx, catalog.OfferFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, stocked.ID, offers[0].ID)

		count, err := repo.CountAvailable(ctx, catalog.OfferFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("filters by shop", func(t *testing.T) {
		closedID := closed.ID
		offers, err := repo.FindAvailable(ctx, catalog.OfferFilter{
			Filter: shared.DefaultFilter(),
			ShopID: &closedID,
		})
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("filters by category", func(t *testing.T) {
		var category catalog.Category
		require.NoError(t, db.First(&category, "external_id = ?", 100).Error)

		offers, err := repo.FindAvailable(ctx, catalog.OfferFilter{
			Filter:     shared.DefaultFilter(),
			CategoryID: &category.ID,
		})
		require.NoError(t, err)
		assert.Len(t, offers, 1)

		unknown := uuid.New()
		offers, err = repo.FindAvailable(ctx, catalog.OfferFilter{
			Filter:     shared.DefaultFilter(),
			CategoryID: &unknown,
		})
		require.NoError(t, err)
		assert.Empty(t, offers)
	})

	t.Run("searches product names", func(t *testing.T) {
		filter := catalog.OfferFilter{Filter: shared.DefaultFilter()}
		filter.Search = "iphone"
		offers, err := repo.FindAvailable(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, offers, 1)
	})

	t.Run("preloads product, shop and parameters", func(t *testing.T) {
		found, err := repo.FindByID(ctx, stocked.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Product)
		require.NotNil(t, found.Product.Category)
		require.NotNil(t, found.Shop)
		assert.Equal(t, "Svyaznoy", found.Shop.Name)
	})
}

func TestGormOfferRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOfferRepository(db)
	ctx := context.Background()

	shop := seedShop(t, db, "Svyaznoy", true)
	first := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)
	second := seedOffer(t, db, shop, 2, "iPhone 15 Pro", 70000, 10)

	offers, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	offers, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, offers)
}
