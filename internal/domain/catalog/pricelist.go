package catalog

import (
	"fmt"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceListCategory is a category entry inside a supplier price list
type PriceListCategory struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// PriceListItem is one stocked position inside a supplier price list
type PriceListItem struct {
	ID         int               `yaml:"id" json:"id"`
	Category   int               `yaml:"category" json:"category"`
	Model      string            `yaml:"model" json:"model"`
	Name       string            `yaml:"name" json:"name"`
	Price      decimal.Decimal   `yaml:"price" json:"price"`
	PriceRRC   decimal.Decimal   `yaml:"price_rrc" json:"price_rrc"`
	Quantity   int               `yaml:"quantity" json:"quantity"`
	Parameters map[string]string `yaml:"parameters" json:"parameters"`
}

// PriceList is the supplier document a shop imports its catalog from
// Importing it wholesale-replaces the shop's offers
type PriceList struct {
	Shop       string              `yaml:"shop" json:"shop"`
	Categories []PriceListCategory `yaml:"categories" json:"categories"`
	Goods      []PriceListItem     `yaml:"goods" json:"goods"`
}

// Validate checks the document shape, collecting every problem found
func (p *PriceList) Validate() error {
	var problems []string

	if p.Shop == "" {
		problems = append(problems, "shop name is required")
	}
	if len(p.Categories) == 0 {
		problems = append(problems, "categories section is required")
	}
	if len(p.Goods) == 0 {
		problems = append(problems, "goods section is required")
	}

	known := make(map[int]bool, len(p.Categories))
	for i, c := range p.Categories {
		if c.ID <= 0 {
			problems = append(problems, fmt.Sprintf("categories[%d]: id must be positive", i))
		}
		if c.Name == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: name is required", i))
		}
		known[c.ID] = true
	}

	seen := make(map[int]bool, len(p.Goods))
	for i, g := range p.Goods {
		if g.ID <= 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: id must be positive", i))
		}
		if seen[g.ID] {
			problems = append(problems, fmt.Sprintf("goods[%d]: duplicate id %d", i, g.ID))
		}
		seen[g.ID] = true
		if g.Name == "" {
			problems = append(problems, fmt.Sprintf("goods[%d]: name is required", i))
		}
		if !known[g.Category] {
			problems = append(problems, fmt.Sprintf("goods[%d]: unknown category %d", i, g.Category))
		}
		if g.Price.IsNegative() || g.PriceRRC.IsNegative() {
			problems = append(problems, fmt.Sprintf("goods[%d]: prices cannot be negative", i))
		}
		if g.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("goods[%d]: quantity cannot be negative", i))
		}
	}

	if len(problems) > 0 {
		return shared.NewDomainErrorWithDetails("INVALID_PRICE_LIST", "Price list document is not valid", problems)
	}
	return nil
}
