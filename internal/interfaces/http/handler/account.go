package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/retail/backend/internal/application/identity"
)

// UpdateAccountRequest carries the mutable profile fields; omitted
// fields are left untouched
type UpdateAccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=8"`
}

// AccountHandler handles the authenticated user's own profile
type AccountHandler struct {
	BaseHandler
	accountService *identity.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *identity.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Get returns the caller's profile with nested contacts
func (h *AccountHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Update changes the caller's profile, including email and password
func (h *AccountHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.accountService.UpdateAccount(c.Request.Context(), identity.UpdateAccountInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// RegisterRoutes registers all account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	account := rg.Group("/account")
	{
		account.GET("", h.Get)
		account.POST("", h.Update)
	}
}
