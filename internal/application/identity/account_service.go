package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// AccountService exposes the authenticated user's own profile
type AccountService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(userRepo identity.UserRepository, logger *zap.Logger) *AccountService {
	return &AccountService{userRepo: userRepo, logger: logger}
}

// GetAccount returns the caller's profile with contacts
func (s *AccountService) GetAccount(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := NewUserInfo(user)
	return &info, nil
}

// UpdateAccount updates profile fields, and optionally the email and
// password. Email uniqueness is re-checked before saving.
func (s *AccountService) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(input.FirstName, input.LastName, input.Company, input.Position)

	if input.Email != "" && input.Email != user.Email {
		if err := user.ChangeEmail(input.Email); err != nil {
			return nil, err
		}
		exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			s.logger.Error("Failed to check email uniqueness", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_EMAIL", "An account with this email already exists")
		}
	}

	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		s.logger.Error("Failed to save account", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Account updated", zap.String("user_id", user.ID.String()))

	info := NewUserInfo(user)
	return &info, nil
}
