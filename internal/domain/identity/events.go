package identity

import (
	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered         = "UserRegistered"
	EventTypeUserActivated          = "UserActivated"
	EventTypePasswordResetRequested = "PasswordResetRequested"
)

// UserRegisteredEvent is raised when a new account is created
// It carries the confirmation token key for the welcome email
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	TokenKey  string    `json:"token_key"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User, tokenKey string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		TokenKey:        tokenKey,
	}
}

// UserActivatedEvent is raised when a user confirms their email
type UserActivatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserActivatedEvent creates a new UserActivatedEvent
func NewUserActivatedEvent(user *User) *UserActivatedEvent {
	return &UserActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserActivated, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// PasswordResetRequestedEvent is raised when a user asks for a password reset
type PasswordResetRequestedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	TokenKey string    `json:"token_key"`
}

// NewPasswordResetRequestedEvent creates a new PasswordResetRequestedEvent
func NewPasswordResetRequestedEvent(user *User, tokenKey string) *PasswordResetRequestedEvent {
	return &PasswordResetRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePasswordResetRequested, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		TokenKey:        tokenKey,
	}
}
