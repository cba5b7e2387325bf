package catalog

import (
	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Product represents a catalog product independent of any shop's offer
type Product struct {
	shared.BaseEntity
	Name       string    `gorm:"type:varchar(80);not null;index"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product within a category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product category cannot be empty")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
