package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusBasket    OrderStatus = "basket"
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// statusFlow is the fulfilment progression; transitions move forward
// through it only, skipping steps is allowed
var statusFlow = []OrderStatus{
	OrderStatusNew,
	OrderStatusConfirmed,
	OrderStatusAssembled,
	OrderStatusSent,
	OrderStatusDelivered,
}

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusNew, OrderStatusConfirmed, OrderStatusAssembled,
		OrderStatusSent, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// flowIndex returns the position of the status in the fulfilment flow,
// or -1 for basket and canceled
func (s OrderStatus) flowIndex() int {
	for i, status := range statusFlow {
		if status == s {
			return i
		}
	}
	return -1
}

// CanAdvanceTo checks whether a supplier may move the order from this
// status to the target. Equal statuses are handled by the caller as a
// no-op and return false here.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	from, to := s.flowIndex(), target.flowIndex()
	if from < 0 || to < 0 {
		return false
	}
	return to > from
}

// IsEditableBySupplier reports whether a supplier may still change the
// order status
func (s OrderStatus) IsEditableBySupplier() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusAssembled, OrderStatusSent:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// OrderItem is one line of an order, pointing at a shop's offer
type OrderItem struct {
	shared.BaseEntity
	OrderID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_order_offer,priority:1"`
	OfferID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_order_offer,priority:2"`
	Quantity int            `gorm:"not null"`
	Offer    *catalog.Offer `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns quantity times the offer price, zero when the offer
// is not loaded
func (i *OrderItem) Amount() decimal.Decimal {
	if i.Offer == nil {
		return decimal.Zero
	}
	return i.Offer.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a buyer's order aggregate root
// It starts life as the user's basket and enters the fulfilment flow
// on checkout
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:varchar(15);not null;default:'basket';index"`
	ContactID *uuid.UUID  `gorm:"type:uuid"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates an empty basket order for a user
func NewBasket(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order user cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusBasket,
		Items:             make([]OrderItem, 0),
	}, nil
}

// IsBasket reports whether the order is still a basket
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// IsEmpty reports whether the order has no lines
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// Total returns the sum of line amounts
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}

// GetItem returns a line by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// GetItemByOffer returns a line by its offer ID
func (o *Order) GetItemByOffer(offerID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].OfferID == offerID {
			return &o.Items[i]
		}
	}
	return nil
}

// AddItem adds quantity of an offer to the basket, summing with an
// existing line for the same offer. The combined quantity must not
// exceed the offer's stock.
func (o *Order) AddItem(offer *catalog.Offer, quantity int) error {
	if !o.IsBasket() {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a basket")
	}
	if offer == nil {
		return shared.NewDomainError("OFFER_NOT_FOUND", "Offer not found")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	requested := quantity
	if existing := o.GetItemByOffer(offer.ID); existing != nil {
		requested += existing.Quantity
	}
	if !offer.InStock(requested) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %d of %d requested units in stock", offer.Quantity, requested))
	}

	if existing := o.GetItemByOffer(offer.ID); existing != nil {
		existing.Quantity = requested
		existing.UpdatedAt = time.Now()
	} else {
		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			OfferID:    offer.ID,
			Quantity:   quantity,
			Offer:      offer,
		})
	}
	o.UpdatedAt = time.Now()

	return nil
}

// SetItemQuantity sets the quantity of an existing line. Zero or a
// negative value removes the line regardless of stock.
func (o *Order) SetItemQuantity(itemID uuid.UUID, quantity int) error {
	if !o.IsBasket() {
		return shared.NewDomainError("INVALID_STATE", "Items can only be changed in a basket")
	}

	item := o.GetItem(itemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}

	if quantity <= 0 {
		o.removeItem(itemID)
		o.UpdatedAt = time.Now()
		return nil
	}

	if item.Offer != nil && !item.Offer.InStock(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Only %d of %d requested units in stock", item.Offer.Quantity, quantity))
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	o.UpdatedAt = time.Now()

	return nil
}

// RemoveItems removes the given lines, returning how many matched
func (o *Order) RemoveItems(itemIDs []uuid.UUID) (int, error) {
	if !o.IsBasket() {
		return 0, shared.NewDomainError("INVALID_STATE", "Items can only be removed from a basket")
	}

	removed := 0
	for _, id := range itemIDs {
		if o.GetItem(id) != nil {
			o.removeItem(id)
			removed++
		}
	}
	if removed > 0 {
		o.UpdatedAt = time.Now()
	}
	return removed, nil
}

func (o *Order) removeItem(itemID uuid.UUID) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return
		}
	}
}

// Checkout places the basket as a new order bound to a delivery contact
func (o *Order) Checkout(contactID uuid.UUID) error {
	if !o.IsBasket() {
		return shared.NewDomainError("INVALID_STATE", "Only a basket can be placed")
	}
	if o.IsEmpty() {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no items")
	}
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "A delivery contact is required")
	}

	o.Status = OrderStatusNew
	o.ContactID = &contactID
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// Cancel cancels the order; delivered and canceled orders cannot change
func (o *Order) Cancel(actorID uuid.UUID) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel an order in %s status", o.Status))
	}

	old := o.Status
	o.Status = OrderStatusCanceled
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old, actorID))

	return nil
}

// AdvanceStatus moves the order forward in the fulfilment flow on
// behalf of a supplier. Setting the current status again is a no-op
// and returns false with no error.
func (o *Order) AdvanceStatus(target OrderStatus, actorID uuid.UUID) (bool, error) {
	if !target.IsValid() || target.flowIndex() < 0 {
		return false, shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("Status %q is not a fulfilment status", target))
	}
	if !o.Status.IsEditableBySupplier() {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order in %s status can no longer be updated", o.Status))
	}
	if target == o.Status {
		return false, nil
	}
	if !o.Status.CanAdvanceTo(target) {
		return false, shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move order from %s back to %s", o.Status, target))
	}

	old := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old, actorID))

	return true, nil
}

// ItemChange records one supplier edit to an order line
type ItemChange struct {
	ItemID      uuid.UUID `json:"item_id"`
	OfferID     uuid.UUID `json:"offer_id"`
	ProductName string    `json:"product_name"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Removed     bool      `json:"removed"`
}

// ApplyItemChange lets a supplier adjust or remove a line of a placed
// order. Unchanged quantities are skipped; zero removes the line.
func (o *Order) ApplyItemChange(itemID uuid.UUID, quantity int) (*ItemChange, error) {
	if !o.Status.IsEditableBySupplier() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order in %s status can no longer be updated", o.Status))
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	item := o.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	if item.Quantity == quantity {
		return nil, nil
	}

	change := &ItemChange{
		ItemID:      item.ID,
		OfferID:     item.OfferID,
		OldQuantity: item.Quantity,
		NewQuantity: quantity,
	}
	if item.Offer != nil && item.Offer.Product != nil {
		change.ProductName = item.Offer.Product.Name
	}

	if quantity == 0 {
		change.Removed = true
		o.removeItem(itemID)
	} else {
		item.Quantity = quantity
		item.UpdatedAt = time.Now()
	}
	o.UpdatedAt = time.Now()

	return change, nil
}
