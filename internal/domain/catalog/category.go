package catalog

import (
	"time"

	"github.com/retail/backend/internal/domain/shared"
)

// Category represents a product category shared across shops
// ExternalID is the supplier-facing identifier used in price lists
type Category struct {
	shared.BaseEntity
	ExternalID int    `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(40);not null;index"`
	Shops      []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category with its supplier-facing identifier
func NewCategory(externalID int, name string) (*Category, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category id must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Name:       name,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
