package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds users with filtering, for admin listings
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// FindByShop finds users who placed orders containing the shop's offers
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]User, error)

	// CountByShop counts users who placed orders containing the shop's offers
	CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error)

	// ExistsByEmail checks whether an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, user *User) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByUser finds all contacts belonging to a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// Delete deletes a contact
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser deletes the given contacts of a user, returning how many rows went away
	DeleteByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// ConfirmEmailTokenRepository defines the interface for confirmation token persistence
type ConfirmEmailTokenRepository interface {
	// FindByKey finds a token by its key and purpose
	FindByKey(ctx context.Context, key string, purpose TokenPurpose) (*ConfirmEmailToken, error)

	// Save creates a token
	Save(ctx context.Context, token *ConfirmEmailToken) error

	// Delete deletes a token
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser deletes all tokens of a user for a purpose
	DeleteByUser(ctx context.Context, userID uuid.UUID, purpose TokenPurpose) error
}
