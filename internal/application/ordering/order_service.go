package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/authz"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
)

// OrderService handles checkout and the order lifecycle
type OrderService struct {
	orderRepo   ordering.OrderRepository
	contactRepo identity.ContactRepository
	userRepo    identity.UserRepository
	shopRepo    catalog.ShopRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo ordering.OrderRepository,
	contactRepo identity.ContactRepository,
	userRepo identity.UserRepository,
	shopRepo catalog.ShopRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		userRepo:    userRepo,
		shopRepo:    shopRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Checkout places the caller's basket as a new order bound to one of
// their delivery contacts
func (s *OrderService) Checkout(ctx context.Context, userID, contactID uuid.UUID) (*OrderInfo, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
		}
		return nil, err
	}

	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, shared.NewDomainError("CONTACT_NOT_FOUND", "Delivery contact not found")
	}
	if !contact.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	if err := basket.Checkout(contact.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, basket); err != nil {
		s.logger.Error("Failed to place order", zap.Error(err))
		return nil, err
	}
	s.publish(ctx, basket)

	s.logger.Info("Order placed",
		zap.String("order_id", basket.ID.String()),
		zap.String("user_id", userID.String()))

	info := NewOrderInfo(basket)
	return &info, nil
}

// ListOwn returns the caller's placed orders
func (s *OrderService) ListOwn(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderInfo], error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		infos = append(infos, NewOrderInfo(&orders[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}

// Get returns one order the actor is allowed to see
func (s *OrderService) Get(ctx context.Context, actorID, orderID uuid.UUID) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	relation, err := s.relationTo(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !authz.Decide(authz.RoleOf(actor), authz.ResourceOrder, relation) {
		return nil, shared.ErrForbidden
	}

	info := NewOrderInfo(order)
	return &info, nil
}

// Cancel cancels an order on behalf of its owner or a superuser
func (s *OrderService) Cancel(ctx context.Context, actorID, orderID uuid.UUID) (*OrderInfo, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// Cancellation is for the order's owner, or a role that may act on
	// unrelated orders
	if order.UserID != actor.ID &&
		!authz.Decide(authz.RoleOf(actor), authz.ResourceOrder, authz.RelationNone) {
		return nil, shared.ErrForbidden
	}

	if err := order.Cancel(actor.ID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		s.logger.Error("Failed to cancel order", zap.Error(err))
		return nil, err
	}
	s.publish(ctx, order)

	s.logger.Info("Order canceled",
		zap.String("order_id", order.ID.String()),
		zap.String("actor_id", actor.ID.String()))

	info := NewOrderInfo(order)
	return &info, nil
}

// PartnerListOrders returns placed orders containing the caller's shop
// offers, with lines filtered to that shop
func (s *OrderService) PartnerListOrders(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderInfo], error) {
	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByShop(ctx, shop.ID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	infos := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		infos = append(infos, NewShopOrderInfo(&orders[i], shop.ID))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}

// PartnerUpdateItems lets a supplier adjust or remove lines of a placed
// order. Only lines pointing at the caller's shop may be touched.
func (s *OrderService) PartnerUpdateItems(ctx context.Context, actorID, orderID uuid.UUID, updates []ItemUpdateInput) ([]ordering.ItemChange, error) {
	if len(updates) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "No items given")
	}

	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changes := make([]ordering.ItemChange, 0, len(updates))
	for _, update := range updates {
		item := order.GetItem(update.ItemID)
		if item == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
		}
		if item.Offer == nil || item.Offer.ShopID != shop.ID {
			return nil, shared.ErrForbidden
		}
		change, err := order.ApplyItemChange(update.ItemID, update.Quantity)
		if err != nil {
			return nil, err
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}
	if len(changes) == 0 {
		return changes, nil
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		s.logger.Error("Failed to save order items", zap.Error(err))
		return nil, err
	}
	s.publishEvents(ctx, ordering.NewOrderItemsChangedEvent(order, actorID, changes))

	s.logger.Info("Order items changed by supplier",
		zap.String("order_id", order.ID.String()),
		zap.String("shop_id", shop.ID.String()),
		zap.Int("changes", len(changes)))

	return changes, nil
}

// PartnerSetStatus moves an order forward in the fulfilment flow.
// Setting the current status again is a no-op success.
func (s *OrderService) PartnerSetStatus(ctx context.Context, actorID, orderID uuid.UUID, status ordering.OrderStatus) (*OrderInfo, error) {
	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	contains, err := s.orderRepo.ContainsShopOffers(ctx, order.ID, shop.ID)
	if err != nil {
		return nil, err
	}
	if !contains {
		return nil, shared.ErrForbidden
	}

	changed, err := order.AdvanceStatus(status, actorID)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			s.logger.Error("Failed to save order status", zap.Error(err))
			return nil, err
		}
		s.publish(ctx, order)

		s.logger.Info("Order status changed",
			zap.String("order_id", order.ID.String()),
			zap.String("status", order.Status.String()),
			zap.String("actor_id", actorID.String()))
	}

	info := NewShopOrderInfo(order, shop.ID)
	return &info, nil
}

// ListAll returns orders visible to the actor in the admin view
func (s *OrderService) ListAll(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderInfo], error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	role := authz.RoleOf(actor)

	if authz.CanListAll(role, authz.ResourceOrder) {
		orders, err := s.orderRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		total, err := s.orderRepo.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
		infos := make([]OrderInfo, 0, len(orders))
		for i := range orders {
			infos = append(infos, NewOrderInfo(&orders[i]))
		}
		page := shared.NewPaginated(infos, total, filter)
		return &page, nil
	}

	if authz.Decide(role, authz.ResourceOrder, authz.RelationSupplier) {
		return s.PartnerListOrders(ctx, actorID, filter)
	}
	return nil, shared.ErrForbidden
}

// requireShop resolves the caller's shop for supplier operations
func (s *OrderService) requireShop(ctx context.Context, actorID uuid.UUID) (*catalog.Shop, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Decide(authz.RoleOf(actor), authz.ResourceOrderItem, authz.RelationSupplier) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts can manage orders")
	}
	shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SHOP_NOT_FOUND", "No shop is linked to this account yet")
		}
		return nil, err
	}
	return shop, nil
}

// relationTo computes how the actor is tied to an order
func (s *OrderService) relationTo(ctx context.Context, actor *identity.User, order *ordering.Order) (authz.Relation, error) {
	if order.UserID == actor.ID {
		return authz.RelationOwner, nil
	}
	if actor.IsShop() || actor.IsStaff {
		shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return authz.RelationNone, nil
			}
			return authz.RelationNone, err
		}
		contains, err := s.orderRepo.ContainsShopOffers(ctx, order.ID, shop.ID)
		if err != nil {
			return authz.RelationNone, err
		}
		if contains {
			return authz.RelationSupplier, nil
		}
	}
	return authz.RelationNone, nil
}

// publish drains the aggregate's domain events to the bus
func (s *OrderService) publish(ctx context.Context, order *ordering.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	order.ClearDomainEvents()
	s.publishEvents(ctx, events...)
}

func (s *OrderService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Error(err))
	}
}
