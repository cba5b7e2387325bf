package ordering

import (
	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderItemsChanged  = "OrderItemsChanged"
)

// OrderPlacedEvent is raised when a basket is checked out
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemCount int       `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ItemCount:       len(order.Items),
	}
}

// OrderStatusChangedEvent is raised on every accepted status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	UserID    uuid.UUID   `json:"user_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ActorID   uuid.UUID   `json:"actor_id"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, old OrderStatus, actorID uuid.UUID) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		OldStatus:       old,
		NewStatus:       order.Status,
		ActorID:         actorID,
	}
}

// OrderItemsChangedEvent is raised when a supplier edits placed order lines
type OrderItemsChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID    `json:"order_id"`
	UserID  uuid.UUID    `json:"user_id"`
	ActorID uuid.UUID    `json:"actor_id"`
	Changes []ItemChange `json:"changes"`
}

// NewOrderItemsChangedEvent creates a new OrderItemsChangedEvent
func NewOrderItemsChangedEvent(order *Order, actorID uuid.UUID, changes []ItemChange) *OrderItemsChangedEvent {
	return &OrderItemsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemsChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ActorID:         actorID,
		Changes:         changes,
	}
}
