package catalog

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Shop represents a supplier storefront owned by a shop-type user
type Shop struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name   string    `gorm:"type:varchar(50);not null;index"`
	URL    string    `gorm:"type:varchar(255)"`
	State  bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a shop for its owning user
func NewShop(userID uuid.UUID, name, shopURL string) (*Shop, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Shop owner cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if shopURL != "" {
		if err := ValidateURL(shopURL); err != nil {
			return nil, err
		}
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              name,
		URL:               shopURL,
		State:             true,
	}, nil
}

// Rename updates the shop name and source URL
func (s *Shop) Rename(name, shopURL string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if shopURL != "" {
		if err := ValidateURL(shopURL); err != nil {
			return err
		}
	}
	s.Name = name
	s.URL = shopURL
	s.UpdatedAt = time.Now()
	return nil
}

// SetState toggles whether the shop is accepting orders
func (s *Shop) SetState(accepting bool) {
	if s.State == accepting {
		return
	}
	s.State = accepting
	s.UpdatedAt = time.Now()
}

// ValidateURL checks that the given string is an absolute http(s) URL
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return shared.NewDomainError("INVALID_URL", "URL must be an absolute http or https address")
	}
	return nil
}
