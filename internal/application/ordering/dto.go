package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/retail/backend/internal/application/catalog"
	"github.com/retail/backend/internal/domain/ordering"
)

// BasketItemInput is one line of a basket add request
type BasketItemInput struct {
	OfferID  uuid.UUID
	Quantity int
}

// BasketUpdateInput is one line of a basket update request
type BasketUpdateInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// ItemUpdateInput is one line of a supplier order edit
type ItemUpdateInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// OrderItemInfo is the order line projection returned to clients
type OrderItemInfo struct {
	ID       uuid.UUID             `json:"id"`
	OfferID  uuid.UUID             `json:"offer_id"`
	Quantity int                   `json:"quantity"`
	Amount   decimal.Decimal       `json:"amount"`
	Offer    *catalogapp.OfferInfo `json:"offer,omitempty"`
}

// OrderInfo is the order projection returned to clients
type OrderInfo struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	ContactID *uuid.UUID      `json:"contact_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []OrderItemInfo `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderItemInfo maps an order line with its preloaded offer
func NewOrderItemInfo(item *ordering.OrderItem) OrderItemInfo {
	info := OrderItemInfo{
		ID:       item.ID,
		OfferID:  item.OfferID,
		Quantity: item.Quantity,
		Amount:   item.Amount(),
	}
	if item.Offer != nil {
		offer := catalogapp.NewOfferInfo(item.Offer)
		info.Offer = &offer
	}
	return info
}

// NewOrderInfo maps an order aggregate to its client projection
func NewOrderInfo(order *ordering.Order) OrderInfo {
	info := OrderInfo{
		ID:        order.ID,
		Status:    order.Status.String(),
		ContactID: order.ContactID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Items:     make([]OrderItemInfo, 0, len(order.Items)),
		Total:     order.Total(),
	}
	for i := range order.Items {
		info.Items = append(info.Items, NewOrderItemInfo(&order.Items[i]))
	}
	return info
}

// NewShopOrderInfo maps an order for a supplier view, keeping only the
// lines that point at the given shop's offers
func NewShopOrderInfo(order *ordering.Order, shopID uuid.UUID) OrderInfo {
	info := OrderInfo{
		ID:        order.ID,
		Status:    order.Status.String(),
		ContactID: order.ContactID,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
		Items:     make([]OrderItemInfo, 0, len(order.Items)),
		Total:     decimal.Zero,
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.Offer == nil || item.Offer.ShopID != shopID {
			continue
		}
		info.Items = append(info.Items, NewOrderItemInfo(item))
		info.Total = info.Total.Add(item.Amount())
	}
	return info
}
