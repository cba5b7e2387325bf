package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/retail/backend/internal/application/catalog"
	identityapp "github.com/retail/backend/internal/application/identity"
	orderingapp "github.com/retail/backend/internal/application/ordering"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// AdminHandler serves the staff listings. The services behind it apply
// the visibility rules, so the handler only relays the caller.
type AdminHandler struct {
	BaseHandler
	adminService   *identityapp.AdminService
	orderService   *orderingapp.OrderService
	partnerService *catalogapp.PartnerService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *identityapp.AdminService,
	orderService *orderingapp.OrderService,
	partnerService *catalogapp.PartnerService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		orderService:   orderService,
		partnerService: partnerService,
	}
}

// Users lists the accounts visible to the caller
func (h *AdminHandler) Users(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.adminService.ListUsers(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Orders lists the orders visible to the caller
func (h *AdminHandler) Orders(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.orderService.ListAll(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Shops lists the shops visible to the caller
func (h *AdminHandler) Shops(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.partnerService.ListShopsForAdmin(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// RegisterRoutes registers all admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/users", h.Users)
		admin.GET("/orders", h.Orders)
		admin.GET("/shops", h.Shops)
	}
}
