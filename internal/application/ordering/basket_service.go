package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
)

// BasketService manages the buyer's basket order
type BasketService struct {
	orderRepo ordering.OrderRepository
	offerRepo catalog.OfferRepository
	logger    *zap.Logger
}

// NewBasketService creates a new basket service
func NewBasketService(
	orderRepo ordering.OrderRepository,
	offerRepo catalog.OfferRepository,
	logger *zap.Logger,
) *BasketService {
	return &BasketService{
		orderRepo: orderRepo,
		offerRepo: offerRepo,
		logger:    logger,
	}
}

// GetBasket returns the caller's basket, or nil when there is none.
// A basket that has become empty is deleted on read.
func (s *BasketService) GetBasket(ctx context.Context, userID uuid.UUID) (*OrderInfo, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if basket.IsEmpty() {
		if err := s.orderRepo.Delete(ctx, basket.ID); err != nil {
			s.logger.Warn("Failed to delete empty basket", zap.Error(err))
		}
		return nil, nil
	}

	info := NewOrderInfo(basket)
	return &info, nil
}

// AddItems adds the batch to the caller's basket. The whole batch is
// validated against live stock first; any failing line rejects all of
// it with itemized errors.
func (s *BasketService) AddItems(ctx context.Context, userID uuid.UUID, items []BasketItemInput) (*OrderInfo, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No items given")
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		basket, err = ordering.NewBasket(userID)
		if err != nil {
			return nil, err
		}
	}

	offerIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		offerIDs = append(offerIDs, item.OfferID)
	}
	offers, err := s.offerRepo.FindByIDs(ctx, offerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Offer, len(offers))
	for i := range offers {
		byID[offers[i].ID] = &offers[i]
	}

	// Requested quantities start from what the basket already holds
	requested := make(map[uuid.UUID]int, len(items))
	for i := range basket.Items {
		requested[basket.Items[i].OfferID] = basket.Items[i].Quantity
	}

	var problems []string
	for i, item := range items {
		offer, ok := byID[item.OfferID]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("items[%d]: offer not found", i))
		case offer.Shop == nil || !offer.Shop.State:
			problems = append(problems, fmt.Sprintf("items[%d]: shop is not accepting orders", i))
		case item.Quantity <= 0:
			problems = append(problems, fmt.Sprintf("items[%d]: quantity must be positive", i))
		default:
			requested[offer.ID] += item.Quantity
			if !offer.InStock(requested[offer.ID]) {
				problems = append(problems, fmt.Sprintf("items[%d]: only %d of %d requested units in stock",
					i, offer.Quantity, requested[offer.ID]))
			}
		}
	}
	if len(problems) > 0 {
		return nil, shared.NewDomainErrorWithDetails("INVALID_BASKET_ITEMS",
			"Basket update rejected", problems)
	}

	for _, item := range items {
		if err := basket.AddItem(byID[item.OfferID], item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, basket); err != nil {
		s.logger.Error("Failed to save basket", zap.Error(err))
		return nil, err
	}

	info := NewOrderInfo(basket)
	return &info, nil
}

// UpdateItems sets line quantities in one batch, all or nothing.
// A quantity of zero or less removes the line regardless of stock.
func (s *BasketService) UpdateItems(ctx context.Context, userID uuid.UUID, updates []BasketUpdateInput) (*OrderInfo, error) {
	if len(updates) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No items given")
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	var problems []string
	for i, update := range updates {
		item := basket.GetItem(update.ItemID)
		switch {
		case item == nil:
			problems = append(problems, fmt.Sprintf("items[%d]: order item not found", i))
		case update.Quantity > 0 && item.Offer != nil && !item.Offer.InStock(update.Quantity):
			problems = append(problems, fmt.Sprintf("items[%d]: only %d of %d requested units in stock",
				i, item.Offer.Quantity, update.Quantity))
		}
	}
	if len(problems) > 0 {
		return nil, shared.NewDomainErrorWithDetails("INVALID_BASKET_ITEMS",
			"Basket update rejected", problems)
	}

	// Duplicate item ids collapse to the last entry
	quantities := make(map[uuid.UUID]int, len(updates))
	ids := make([]uuid.UUID, 0, len(updates))
	for _, update := range updates {
		if _, seen := quantities[update.ItemID]; !seen {
			ids = append(ids, update.ItemID)
		}
		quantities[update.ItemID] = update.Quantity
	}
	for _, id := range ids {
		if err := basket.SetItemQuantity(id, quantities[id]); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, basket); err != nil {
		s.logger.Error("Failed to save basket", zap.Error(err))
		return nil, err
	}

	info := NewOrderInfo(basket)
	return &info, nil
}

// RemoveItems deletes basket lines by id, returning how many matched
func (s *BasketService) RemoveItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int, error) {
	if len(itemIDs) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "No item ids given")
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return 0, err
	}

	removed, err := basket.RemoveItems(itemIDs)
	if err != nil {
		return 0, err
	}
	if removed == 0 {
		return 0, nil
	}

	if basket.IsEmpty() {
		if err := s.orderRepo.Delete(ctx, basket.ID); err != nil {
			s.logger.Error("Failed to delete emptied basket", zap.Error(err))
			return 0, err
		}
		return removed, nil
	}

	if err := s.orderRepo.Save(ctx, basket); err != nil {
		s.logger.Error("Failed to save basket", zap.Error(err))
		return 0, err
	}
	return removed, nil
}
