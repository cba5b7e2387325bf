package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/infrastructure/auth"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Position  string
	Type      identity.UserType
}

// ConfirmEmailInput contains the input for email confirmation
type ConfirmEmailInput struct {
	Email string
	Token string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Tokens *auth.TokenPair
	User   UserInfo
}

// PasswordResetInput contains the input for requesting a password reset
type PasswordResetInput struct {
	Email string
}

// PasswordResetConfirmInput contains the input for completing a reset
type PasswordResetConfirmInput struct {
	Email    string
	Token    string
	Password string
}

// UpdateAccountInput contains the mutable account fields; empty values
// are left untouched
type UpdateAccountInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Company   string
	Position  string
	Email     string
	Password  string
}

// UserInfo is the account projection returned to clients
type UserInfo struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Company   string        `json:"company,omitempty"`
	Position  string        `json:"position,omitempty"`
	Type      string        `json:"type"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	Contacts  []ContactInfo `json:"contacts,omitempty"`
}

// ContactInfo is the delivery contact projection
type ContactInfo struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Structure string    `json:"structure,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// CreateContactInput contains the input for creating a contact
type CreateContactInput struct {
	UserID    uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// UpdateContactInput contains the input for replacing a contact's fields
type UpdateContactInput struct {
	ContactID uuid.UUID
	ActorID   uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// NewUserInfo maps a user aggregate to its client projection
func NewUserInfo(user *identity.User) UserInfo {
	info := UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
		Position:  user.Position,
		Type:      user.Type.String(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
	for i := range user.Contacts {
		info.Contacts = append(info.Contacts, NewContactInfo(&user.Contacts[i]))
	}
	return info
}

// NewContactInfo maps a contact to its client projection
func NewContactInfo(contact *identity.Contact) ContactInfo {
	return ContactInfo{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Structure: contact.Structure,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
}
