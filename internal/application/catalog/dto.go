package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail/backend/internal/domain/catalog"
)

// CategoryInfo is the category projection returned to clients
type CategoryInfo struct {
	ID         uuid.UUID `json:"id"`
	ExternalID int       `json:"external_id"`
	Name       string    `json:"name"`
}

// ShopInfo is the shop projection returned to clients
type ShopInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// ProductInfo is the nested product projection of an offer
type ProductInfo struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Category *CategoryInfo `json:"category,omitempty"`
}

// OfferInfo is the stocked offer projection returned to clients
type OfferInfo struct {
	ID         uuid.UUID         `json:"id"`
	ExternalID int               `json:"external_id"`
	Model      string            `json:"model,omitempty"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Quantity   int               `json:"quantity"`
	Product    *ProductInfo      `json:"product,omitempty"`
	Shop       *ShopInfo         `json:"shop,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// ProductListInput narrows the product listing
type ProductListInput struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ImportResult summarizes a completed price-list import
type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Goods      int    `json:"goods"`
}

// NewCategoryInfo maps a category to its projection
func NewCategoryInfo(category *catalog.Category) CategoryInfo {
	return CategoryInfo{
		ID:         category.ID,
		ExternalID: category.ExternalID,
		Name:       category.Name,
	}
}

// NewShopInfo maps a shop to its projection
func NewShopInfo(shop *catalog.Shop) ShopInfo {
	return ShopInfo{
		ID:    shop.ID,
		Name:  shop.Name,
		State: shop.State,
	}
}

// NewOfferInfo maps an offer with its preloaded associations
func NewOfferInfo(offer *catalog.Offer) OfferInfo {
	info := OfferInfo{
		ID:         offer.ID,
		ExternalID: offer.ExternalID,
		Model:      offer.Model,
		Price:      offer.Price,
		PriceRRC:   offer.PriceRRC,
		Quantity:   offer.Quantity,
	}
	if offer.Product != nil {
		product := ProductInfo{ID: offer.Product.ID, Name: offer.Product.Name}
		if offer.Product.Category != nil {
			category := NewCategoryInfo(offer.Product.Category)
			product.Category = &category
		}
		info.Product = &product
	}
	if offer.Shop != nil {
		shop := NewShopInfo(offer.Shop)
		info.Shop = &shop
	}
	if len(offer.Parameters) > 0 {
		info.Parameters = make(map[string]string, len(offer.Parameters))
		for _, p := range offer.Parameters {
			if p.Parameter != nil {
				info.Parameters[p.Parameter.Name] = p.Value
			}
		}
	}
	return info
}
