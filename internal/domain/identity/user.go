package identity

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/retail/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// UserType distinguishes buyers from supplier (shop) accounts
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

// IsValid checks if the user type is known
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeBuyer, UserTypeShop:
		return true
	}
	return false
}

// String returns the string representation of UserType
func (t UserType) String() string {
	return string(t)
}

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// User represents a registered account aggregate root
// Accounts start inactive and are activated through email confirmation
type User struct {
	shared.BaseAggregateRoot
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(128);not null"`
	FirstName    string     `gorm:"type:varchar(150);not null"`
	LastName     string     `gorm:"type:varchar(150);not null"`
	Company      string     `gorm:"type:varchar(100)"`
	Position     string     `gorm:"type:varchar(100)"`
	Type         UserType   `gorm:"type:varchar(10);not null;default:'buyer'"`
	IsActive     bool       `gorm:"not null;default:false"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsSuperuser  bool       `gorm:"not null;default:false"`
	LastLoginAt  *time.Time `gorm:""`
	Contacts     []Contact  `gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new inactive user, hashing the plaintext password
func NewUser(email, password, firstName, lastName, company, position string, userType UserType) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}
	if userType == "" {
		userType = UserTypeBuyer
	}
	if !userType.IsValid() {
		return nil, shared.NewDomainError("INVALID_USER_TYPE", "User type must be buyer or shop")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
		FirstName:         firstName,
		LastName:          lastName,
		Company:           company,
		Position:          position,
		Type:              userType,
		IsActive:          false,
	}, nil
}

// Activate marks the account as confirmed and able to log in
func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.UpdatedAt = time.Now()
}

// UpdateProfile updates mutable profile fields, skipping empty values
func (u *User) UpdateProfile(firstName, lastName, company, position string) {
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	if company != "" {
		u.Company = company
	}
	if position != "" {
		u.Position = position
	}
	u.UpdatedAt = time.Now()
}

// ChangeEmail changes the account email
// Uniqueness must be re-checked by the caller before saving
func (u *User) ChangeEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.UpdatedAt = time.Now()
	return nil
}

// SetPassword validates and replaces the stored password
func (u *User) SetPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stores the time of a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsShop returns true for supplier accounts
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}

// IsAdmin returns true for staff and superuser accounts
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	return nil
}

// ValidatePassword enforces the password policy for plaintext passwords
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters long")
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return shared.NewDomainError("WEAK_PASSWORD", "Password cannot be entirely numeric")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
