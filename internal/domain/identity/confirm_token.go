package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// TokenTTL is how long a confirmation token stays valid
const TokenTTL = 24 * time.Hour

// TokenPurpose distinguishes what a token authorizes
type TokenPurpose string

const (
	TokenPurposeConfirm TokenPurpose = "confirm"
	TokenPurposeReset   TokenPurpose = "reset"
)

// ConfirmEmailToken is a one-time key mailed to the user to confirm
// their address or authorize a password reset
type ConfirmEmailToken struct {
	shared.BaseEntity
	UserID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Key     string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	Purpose TokenPurpose `gorm:"type:varchar(10);not null;default:'confirm'"`
}

// TableName returns the table name for GORM
func (ConfirmEmailToken) TableName() string {
	return "confirm_email_tokens"
}

// NewConfirmEmailToken issues a fresh token for a user
func NewConfirmEmailToken(userID uuid.UUID, purpose TokenPurpose) (*ConfirmEmailToken, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if purpose != TokenPurposeConfirm && purpose != TokenPurposeReset {
		return nil, shared.NewDomainError("INVALID_TOKEN_PURPOSE", "Unknown token purpose")
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}

	return &ConfirmEmailToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        key,
		Purpose:    purpose,
	}, nil
}

// IsExpired reports whether the token has outlived its TTL
func (t *ConfirmEmailToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > TokenTTL
}

func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
