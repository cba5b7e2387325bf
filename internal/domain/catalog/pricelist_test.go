package catalog

import (
	"errors"
	"testing"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPriceList() *PriceList {
	return &PriceList{
		Shop: "Svyaznoy",
		Categories: []PriceListCategory{
			{ID: 224, Name: "Smartphones"},
		},
		Goods: []PriceListItem{
			{
				ID:       4216292,
				Category: 224,
				Model:    "apple/iphone/xs-max",
				Name:     "Smartphone Apple iPhone XS Max 512GB (gold)",
				Price:    decimal.NewFromInt(110000),
				PriceRRC: decimal.NewFromInt(116990),
				Quantity: 14,
				Parameters: map[string]string{
					"Screen Size (inches)": "6.5",
					"Color":                "gold",
				},
			},
		},
	}
}

func TestPriceList_Validate(t *testing.T) {
	t.Run("accepts a well formed document", func(t *testing.T) {
		assert.NoError(t, validPriceList().Validate())
	})

	t.Run("requires shop categories and goods", func(t *testing.T) {
		doc := &PriceList{}
		err := doc.Validate()
		require.Error(t, err)
		details := errDetails(t, err)
		assert.Contains(t, details, "shop name is required")
		assert.Contains(t, details, "categories section is required")
		assert.Contains(t, details, "goods section is required")
	})

	t.Run("rejects goods referencing unknown categories", func(t *testing.T) {
		doc := validPriceList()
		doc.Goods[0].Category = 999
		err := doc.Validate()
		require.Error(t, err)
		assert.Contains(t, errDetails(t, err), "goods[0]: unknown category 999")
	})

	t.Run("rejects duplicate good ids", func(t *testing.T) {
		doc := validPriceList()
		doc.Goods = append(doc.Goods, doc.Goods[0])
		assert.Error(t, doc.Validate())
	})

	t.Run("rejects negative quantity and price", func(t *testing.T) {
		doc := validPriceList()
		doc.Goods[0].Quantity = -1
		assert.Error(t, doc.Validate())

		doc = validPriceList()
		doc.Goods[0].Price = decimal.NewFromInt(-5)
		assert.Error(t, doc.Validate())
	})
}

func errDetails(t *testing.T, err error) []string {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %T", err)
	return domainErr.Details
}
