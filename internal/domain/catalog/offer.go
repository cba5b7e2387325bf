package catalog

import (
	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Parameter is a named product characteristic shared across offers
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(40);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a named parameter
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PARAMETER", "Parameter name cannot be empty")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// OfferParameter holds a parameter value for one offer
type OfferParameter struct {
	shared.BaseEntity
	OfferID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_offer_parameter,priority:1"`
	ParameterID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_offer_parameter,priority:2"`
	Value       string     `gorm:"type:varchar(100);not null"`
	Parameter   *Parameter `gorm:"foreignKey:ParameterID"`
}

// TableName returns the table name for GORM
func (OfferParameter) TableName() string {
	return "offer_parameters"
}

// Offer represents one shop's stocked position for a product
// A shop's price list wholesale-replaces its offers on import
type Offer struct {
	shared.BaseEntity
	ShopID     uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_offer_shop_external,priority:1"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ExternalID int              `gorm:"not null;uniqueIndex:idx_offer_shop_external,priority:2"`
	Model      string           `gorm:"type:varchar(80)"`
	Price      decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	PriceRRC   decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Quantity   int              `gorm:"not null;default:0"`
	Product    *Product         `gorm:"foreignKey:ProductID"`
	Shop       *Shop            `gorm:"foreignKey:ShopID"`
	Parameters []OfferParameter `gorm:"foreignKey:OfferID"`
}

// TableName returns the table name for GORM
func (Offer) TableName() string {
	return "offers"
}

// NewOffer creates a stocked offer for a shop
func NewOffer(shopID, productID uuid.UUID, externalID int, model string, price, priceRRC decimal.Decimal, quantity int) (*Offer, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer shop cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer product cannot be empty")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_OFFER", "Offer external id must be positive")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Offer prices cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Offer quantity cannot be negative")
	}

	return &Offer{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		ProductID:  productID,
		ExternalID: externalID,
		Model:      model,
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
	}, nil
}

// AddParameter attaches a parameter value to the offer
func (o *Offer) AddParameter(parameterID uuid.UUID, value string) error {
	if parameterID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARAMETER", "Parameter id cannot be empty")
	}
	o.Parameters = append(o.Parameters, OfferParameter{
		BaseEntity:  shared.NewBaseEntity(),
		OfferID:     o.ID,
		ParameterID: parameterID,
		Value:       value,
	})
	return nil
}

// InStock reports whether the requested quantity is available
func (o *Offer) InStock(quantity int) bool {
	return quantity <= o.Quantity
}
