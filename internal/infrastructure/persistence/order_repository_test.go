package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
)

func TestGormOrderRepository_FindBasket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "basket@example.com", identity.UserTypeBuyer)
	shop := seedShop(t, db, "Svyaznoy", true)
	offer := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)
	seedBasket(t, db, buyer.ID, offer)

	t.Run("finds the basket with offers preloaded", func(t *testing.T) {
		basket, err := repo.FindBasket(ctx, buyer.ID)
		require.NoError(t, err)
		assert.True(t, basket.IsBasket())
		require.Len(t, basket.Items, 1)
		require.NotNil(t, basket.Items[0].Offer)
		assert.Equal(t, "iPhone 15", basket.Items[0].Offer.Product.Name)
	})

	t.Run("returns not found when the user has none", func(t *testing.T) {
		_, err := repo.FindBasket(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_SaveSyncsItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "sync@example.com", identity.UserTypeBuyer)
	shop := seedShop(t, db, "Svyaznoy", true)
	first := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)
	second := seedOffer(t, db, shop, 2, "iPhone 15 Pro", 70000, 10)
	basket := seedBasket(t, db, buyer.ID, first, second)

	removed, err := basket.RemoveItems([]uuid.UUID{basket.Items[0].ID})
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.NoError(t, repo.Save(ctx, basket))

	reloaded, err := repo.FindByID(ctx, basket.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, second.ID, reloaded.Items[0].OfferID)

	var itemCount int64
	require.NoError(t, db.Model(&ordering.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "lock@example.com", identity.UserTypeBuyer)
	shop := seedShop(t, db, "Svyaznoy", true)
	offer := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)
	basket := seedBasket(t, db, buyer.ID, offer)

	contact, err := identity.NewContact(buyer.ID, "Moscow", "Tverskaya", "1", "", "", "", "+79990000001")
	require.NoError(t, err)
	require.NoError(t, db.Create(contact).Error)

	require.NoError(t, basket.Checkout(contact.ID))
	require.NoError(t, repo.SaveWithLock(ctx, basket))

	t.Run("persists the new status", func(t *testing.T) {
		reloaded, err := repo.FindByID(ctx, basket.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusNew, reloaded.Status)
		require.NotNil(t, reloaded.ContactID)
		assert.Equal(t, contact.ID, *reloaded.ContactID)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		stale := *basket
		stale.Version = 1
		err := repo.SaveWithLock(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormOrderRepository_FindByShop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "shopview@example.com", identity.UserTypeBuyer)
	ourShop := seedShop(t, db, "Svyaznoy", true)
	otherShop := seedShop(t, db, "Euroset", true)
	ours := seedOffer(t, db, ourShop, 1, "iPhone 15", 50000, 10)
	theirs := seedOffer(t, db, otherShop, 1, "Galaxy S24", 45000, 10)

	contact, err := identity.NewContact(buyer.ID, "Moscow", "Tverskaya", "1", "", "", "", "+79990000001")
	require.NoError(t, err)
	require.NoError(t, db.Create(contact).Error)

	// A placed order containing both shops' offers
	mixed := seedBasket(t, db, buyer.ID, ours, theirs)
	require.NoError(t, mixed.Checkout(contact.ID))
	require.NoError(t, repo.SaveWithLock(ctx, mixed))

	// A basket never shows up in shop listings
	seedBasket(t, db, seedUser(t, db, "another@example.com", identity.UserTypeBuyer).ID, ours)

	t.Run("lists placed orders containing the shop's offers", func(t *testing.T) {
		orders, err := repo.FindByShop(ctx, ourShop.ID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mixed.ID, orders[0].ID)

		count, err := repo.CountByShop(ctx, ourShop.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("reports offer containment", func(t *testing.T) {
		ok, err := repo.ContainsShopOffers(ctx, mixed.ID, ourShop.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		thirdShop := seedShop(t, db, "DNS", true)
		ok, err = repo.ContainsShopOffers(ctx, mixed.ID, thirdShop.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Fields = map[string]string{"status": "confirmed"}
		orders, err := repo.FindByShop(ctx, ourShop.ID, filter)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestGormOrderRepository_FindByUserExcludesBasket(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "history@example.com", identity.UserTypeBuyer)
	shop := seedShop(t, db, "Svyaznoy", true)
	offer := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)

	contact, err := identity.NewContact(buyer.ID, "Moscow", "Tverskaya", "1", "", "", "", "+79990000001")
	require.NoError(t, err)
	require.NoError(t, db.Create(contact).Error)

	placed := seedBasket(t, db, buyer.ID, offer)
	require.NoError(t, placed.Checkout(contact.ID))
	require.NoError(t, repo.SaveWithLock(ctx, placed))

	seedBasket(t, db, buyer.ID, offer)

	orders, err := repo.FindByUser(ctx, buyer.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)

	count, err := repo.CountByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "delete@example.com", identity.UserTypeBuyer)
	shop := seedShop(t, db, "Svyaznoy", true)
	offer := seedOffer(t, db, shop, 1, "iPhone 15", 50000, 10)
	basket := seedBasket(t, db, buyer.ID, offer)

	require.NoError(t, repo.Delete(ctx, basket.ID))

	_, err := repo.FindByID(ctx, basket.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&ordering.OrderItem{}).Where("order_id = ?", basket.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)

	assert.ErrorIs(t, repo.Delete(ctx, basket.ID), shared.ErrNotFound)
}
