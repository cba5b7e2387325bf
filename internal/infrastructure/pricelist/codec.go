package pricelist

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/retail/backend/internal/domain/catalog"
)

// Decode parses a supplier price-list YAML document and validates its
// shape
func Decode(data []byte) (*catalog.PriceList, error) {
	var doc catalog.PriceList
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseJSONUnmarshaler()); err != nil {
		return nil, fmt.Errorf("failed to parse price list: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode renders a price list back to YAML, the inverse of Decode
func Encode(doc *catalog.PriceList) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(doc, yaml.UseJSONMarshaler())
	if err != nil {
		return nil, fmt.Errorf("failed to encode price list: %w", err)
	}
	return data, nil
}
