package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Contact represents a delivery address and phone for a user
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Structure string    `gorm:"type:varchar(15)"`
	Building  string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact for a user
func NewContact(userID uuid.UUID, city, street, house, structure, building, apartment, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "City is required")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Street is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Phone is required")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		House:      house,
		Structure:  structure,
		Building:   building,
		Apartment:  apartment,
		Phone:      phone,
	}, nil
}

// Update replaces the contact's address fields
func (c *Contact) Update(city, street, house, structure, building, apartment, phone string) error {
	if city == "" {
		return shared.NewDomainError("INVALID_CONTACT", "City is required")
	}
	if street == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Street is required")
	}
	if phone == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Phone is required")
	}

	c.City = city
	c.Street = street
	c.House = house
	c.Structure = structure
	c.Building = building
	c.Apartment = apartment
	c.Phone = phone
	c.UpdatedAt = time.Now()

	return nil
}

// BelongsTo reports whether the contact is owned by the given user
func (c *Contact) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}
