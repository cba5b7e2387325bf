package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retail/backend/internal/application/identity"
	domainidentity "github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/interfaces/http/middleware"
)

// RegisterRequest is the account registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Type      string `json:"type" binding:"omitempty,oneof=buyer shop"`
}

// ConfirmRequest is the email confirmation payload
type ConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// PasswordResetRequest asks for a password reset token
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest completes a password reset
type PasswordResetConfirmRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse carries the token pair and the account projection
type LoginResponse struct {
	Token TokenResponse     `json:"token"`
	User  identity.UserInfo `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an inactive account and issues a confirmation token
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	userType := domainidentity.UserTypeBuyer
	if req.Type != "" {
		userType = domainidentity.UserType(req.Type)
	}

	user, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Type:      userType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Confirm activates an account with an emailed confirmation token
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.ConfirmEmail(c.Request.Context(), identity.ConfirmEmailInput{
		Email: req.Email,
		Token: req.Token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"confirmed": true})
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.Tokens.AccessToken,
			RefreshToken:          result.Tokens.RefreshToken,
			AccessTokenExpiresAt:  result.Tokens.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.Tokens.RefreshTokenExpiresAt,
			TokenType:             result.Tokens.TokenType,
		},
		User: result.User,
	})
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"logged_out": true})
}

// Refresh rotates a refresh token into a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken:           tokens.AccessToken,
		RefreshToken:          tokens.RefreshToken,
		AccessTokenExpiresAt:  tokens.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokens.RefreshTokenExpiresAt,
		TokenType:             tokens.TokenType,
	})
}

// PasswordReset issues a reset token for a known email. Unknown emails
// are answered identically so the endpoint cannot be used to enumerate
// registered accounts.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.RequestPasswordReset(c.Request.Context(), identity.PasswordResetInput{
		Email: req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"requested": true})
}

// PasswordResetConfirm sets a new password with an emailed reset token
func (h *AuthHandler) PasswordResetConfirm(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.authService.ConfirmPasswordReset(c.Request.Context(), identity.PasswordResetConfirmInput{
		Email:    req.Email,
		Token:    req.Token,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"reset": true})
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register/confirm", h.Confirm)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/password/reset", h.PasswordReset)
		auth.POST("/password/reset/confirm", h.PasswordResetConfirm)
	}
}
