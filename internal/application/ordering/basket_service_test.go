package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
)

func createBasketService(orderRepo *MockOrderRepository, offerRepo *MockOfferRepository) *BasketService {
	return NewBasketService(orderRepo, offerRepo, zap.NewNop())
}

func TestBasketService_GetBasket_None(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	userID := uuid.New()

	orderRepo.On("FindBasket", ctx, userID).Return(nil, shared.ErrNotFound)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	info, err := service.GetBasket(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestBasketService_GetBasket_EmptyDeleted(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)

	buyer := createBuyer()
	basket := createBasketWith(buyer.ID)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	orderRepo.On("Delete", ctx, basket.ID).Return(nil)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	info, err := service.GetBasket(ctx, buyer.ID)

	require.NoError(t, err)
	assert.Nil(t, info)
	orderRepo.AssertExpectations(t)
}

func TestBasketService_AddItems_NewBasket(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(nil, shared.ErrNotFound)
	offerRepo.On("FindByIDs", ctx, []uuid.UUID{offer.ID}).Return([]catalog.Offer{*offer}, nil)
	orderRepo.On("Save", ctx, mock.AnythingOfType("*ordering.Order")).Return(nil)

	service := createBasketService(orderRepo, offerRepo)

	info, err := service.AddItems(ctx, buyer.ID, []BasketItemInput{
		{OfferID: offer.ID, Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, "basket", info.Status)
	require.Len(t, info.Items, 1)
	assert.Equal(t, 2, info.Items[0].Quantity)
	assert.True(t, info.Total.Equal(decimal.NewFromInt(220000)))

	orderRepo.AssertExpectations(t)
	offerRepo.AssertExpectations(t)
}

func TestBasketService_AddItems_MergesExistingLine(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	basket := createBasketWith(buyer.ID, offer)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	offerRepo.On("FindByIDs", ctx, []uuid.UUID{offer.ID}).Return([]catalog.Offer{*offer}, nil)
	orderRepo.On("Save", ctx, basket).Return(nil)

	service := createBasketService(orderRepo, offerRepo)

	info, err := service.AddItems(ctx, buyer.ID, []BasketItemInput{
		{OfferID: offer.ID, Quantity: 3},
	})

	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, 4, info.Items[0].Quantity)
}

func TestBasketService_AddItems_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	good := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	scarce := createTestOffer(shop, 4216313, "iPhone XR", 65000, 2)
	basket := createBasketWith(buyer.ID, good)
	missing := uuid.New()

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	offerRepo.On("FindByIDs", ctx, []uuid.UUID{good.ID, scarce.ID, missing}).
		Return([]catalog.Offer{*good, *scarce}, nil)

	service := createBasketService(orderRepo, offerRepo)

	info, err := service.AddItems(ctx, buyer.ID, []BasketItemInput{
		{OfferID: good.ID, Quantity: 1},
		{OfferID: scarce.ID, Quantity: 5},
		{OfferID: missing, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, info)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_BASKET_ITEMS", domainErr.Code)
	require.Len(t, domainErr.Details, 2)
	assert.Contains(t, domainErr.Details[0], "items[1]")
	assert.Contains(t, domainErr.Details[0], "in stock")
	assert.Contains(t, domainErr.Details[1], "items[2]")
	assert.Contains(t, domainErr.Details[1], "not found")

	// the valid line must not have been applied either
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 1, basket.Items[0].Quantity)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBasketService_AddItems_ClosedShopRejected(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	shop.State = false
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(nil, shared.ErrNotFound)
	offerRepo.On("FindByIDs", ctx, []uuid.UUID{offer.ID}).Return([]catalog.Offer{*offer}, nil)

	service := createBasketService(orderRepo, offerRepo)

	info, err := service.AddItems(ctx, buyer.ID, []BasketItemInput{
		{OfferID: offer.ID, Quantity: 1},
	})

	require.Error(t, err)
	assert.Nil(t, info)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Len(t, domainErr.Details, 1)
	assert.Contains(t, domainErr.Details[0], "not accepting orders")
}

func TestBasketService_AddItems_CumulativeStockCheck(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 5)
	basket := createBasketWith(buyer.ID, offer) // 1 already in basket

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	offerRepo.On("FindByIDs", ctx, []uuid.UUID{offer.ID, offer.ID}).
		Return([]catalog.Offer{*offer}, nil)

	service := createBasketService(orderRepo, offerRepo)

	// 1 held + 3 + 2 = 6 exceeds the 5 in stock
	info, err := service.AddItems(ctx, buyer.ID, []BasketItemInput{
		{OfferID: offer.ID, Quantity: 3},
		{OfferID: offer.ID, Quantity: 2},
	})

	require.Error(t, err)
	assert.Nil(t, info)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Len(t, domainErr.Details, 1)
	assert.Contains(t, domainErr.Details[0], "items[1]")
}

func TestBasketService_UpdateItems_SetAndRemove(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	offerRepo := new(MockOfferRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offerA := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	offerB := createTestOffer(shop, 4216313, "iPhone XR", 65000, 7)
	basket := createBasketWith(buyer.ID, offerA, offerB)
	itemA := basket.GetItemByOffer(offerA.ID)
	itemB := basket.GetItemByOffer(offerB.ID)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	orderRepo.On("Save", ctx, basket).Return(nil)

	service := createBasketService(orderRepo, offerRepo)

	info, err := service.UpdateItems(ctx, buyer.ID, []BasketUpdateInput{
		{ItemID: itemA.ID, Quantity: 4},
		{ItemID: itemB.ID, Quantity: 0},
	})

	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, itemA.ID, info.Items[0].ID)
	assert.Equal(t, 4, info.Items[0].Quantity)
}

func TestBasketService_UpdateItems_DuplicateIDsLastWins(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	basket := createBasketWith(buyer.ID, offer)
	item := basket.GetItemByOffer(offer.ID)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	orderRepo.On("Save", ctx, basket).Return(nil)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	// A removal followed by an update of the same line collapses to the
	// later entry instead of failing on the already removed line
	info, err := service.UpdateItems(ctx, buyer.ID, []BasketUpdateInput{
		{ItemID: item.ID, Quantity: 0},
		{ItemID: item.ID, Quantity: 6},
	})

	require.NoError(t, err)
	require.Len(t, info.Items, 1)
	assert.Equal(t, 6, info.Items[0].Quantity)
}

func TestBasketService_UpdateItems_StockChecked(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 3)
	basket := createBasketWith(buyer.ID, offer)
	item := basket.GetItemByOffer(offer.ID)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	info, err := service.UpdateItems(ctx, buyer.ID, []BasketUpdateInput{
		{ItemID: item.ID, Quantity: 5},
	})

	require.Error(t, err)
	assert.Nil(t, info)
	assertDomainErrorCode(t, err, "INVALID_BASKET_ITEMS")
	assert.Equal(t, 1, item.Quantity)
}

func TestBasketService_RemoveItems_DeletesEmptiedBasket(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	basket := createBasketWith(buyer.ID, offer)
	item := basket.GetItemByOffer(offer.ID)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)
	orderRepo.On("Delete", ctx, basket.ID).Return(nil)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	removed, err := service.RemoveItems(ctx, buyer.ID, []uuid.UUID{item.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBasketService_RemoveItems_UnknownIDsIgnored(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)

	buyer := createBuyer()
	_, shop := createSupplier()
	offer := createTestOffer(shop, 4216292, "iPhone XS", 110000, 10)
	basket := createBasketWith(buyer.ID, offer)

	orderRepo.On("FindBasket", ctx, buyer.ID).Return(basket, nil)

	service := createBasketService(orderRepo, new(MockOfferRepository))

	removed, err := service.RemoveItems(ctx, buyer.ID, []uuid.UUID{uuid.New()})

	require.NoError(t, err)
	assert.Zero(t, removed)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
