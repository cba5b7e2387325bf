package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/auth"
)

// timeNow is stubbed in tests that exercise token expiry
var timeNow = time.Now

// AuthService handles registration, confirmation and authentication
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.ConfirmEmailTokenRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.ConfirmEmailTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Register creates an inactive account and issues a confirmation token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.FirstName,
		input.LastName, input.Company, input.Position, input.Type)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "An account with this email already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	token, err := identity.NewConfirmEmailToken(user.ID, identity.TokenPurposeConfirm)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save confirmation token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	s.publish(ctx, identity.NewUserRegisteredEvent(user, token.Key))

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	info := NewUserInfo(user)
	return &info, nil
}

// ConfirmEmail activates an account using a confirmation token.
// Expired tokens are deleted on sight.
func (s *AuthService) ConfirmEmail(ctx context.Context, input ConfirmEmailInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or confirmation token")
	}

	token, err := s.tokenRepo.FindByKey(ctx, input.Token, identity.TokenPurposeConfirm)
	if err != nil || token.UserID != user.ID {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or confirmation token")
	}

	if token.IsExpired(timeNow()) {
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			s.logger.Warn("Failed to delete expired token", zap.Error(err))
		}
		return shared.NewDomainError("TOKEN_EXPIRED", "Confirmation token has expired, request a new one")
	}

	user.Activate()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm account")
	}
	if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
		s.logger.Warn("Failed to delete used token", zap.Error(err))
	}

	s.publish(ctx, identity.NewUserActivatedEvent(user))

	s.logger.Info("User activated", zap.String("user_id", user.ID.String()))
	return nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", user.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account email is not confirmed")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.Type.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// login still succeeds
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResult{Tokens: tokens, User: NewUserInfo(user)}, nil
}

// Logout revokes the presented access token until it expires
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokens, err := s.jwtService.RefreshTokenPair(refreshToken, user.Email, user.Type.String())
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	return tokens, nil
}

// RequestPasswordReset issues a reset token for a known account.
// Unknown emails succeed silently so the endpoint cannot be used to
// enumerate registered addresses.
func (s *AuthService) RequestPasswordReset(ctx context.Context, input PasswordResetInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Info("Password reset requested for unknown email", zap.String("email", input.Email))
		return nil
	}

	if err := s.tokenRepo.DeleteByUser(ctx, user.ID, identity.TokenPurposeReset); err != nil {
		s.logger.Warn("Failed to delete prior reset tokens", zap.Error(err))
	}

	token, err := identity.NewConfirmEmailToken(user.ID, identity.TokenPurposeReset)
	if err != nil {
		return err
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		s.logger.Error("Failed to save reset token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to request password reset")
	}

	s.publish(ctx, identity.NewPasswordResetRequestedEvent(user, token.Key))

	s.logger.Info("Password reset requested", zap.String("user_id", user.ID.String()))
	return nil
}

// ConfirmPasswordReset sets a new password using a reset token
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, input PasswordResetConfirmInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or reset token")
	}

	token, err := s.tokenRepo.FindByKey(ctx, input.Token, identity.TokenPurposeReset)
	if err != nil || token.UserID != user.ID {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid email or reset token")
	}

	if token.IsExpired(timeNow()) {
		if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
			s.logger.Warn("Failed to delete expired token", zap.Error(err))
		}
		return shared.NewDomainError("TOKEN_EXPIRED", "Reset token has expired, request a new one")
	}

	if err := user.SetPassword(input.Password); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}
	if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
		s.logger.Warn("Failed to delete used token", zap.Error(err))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Error(err))
	}
}
