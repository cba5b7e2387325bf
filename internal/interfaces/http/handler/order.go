package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retail/backend/internal/application/ordering"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// CheckoutRequest places the basket as an order against a delivery contact
type CheckoutRequest struct {
	ContactID uuid.UUID `json:"contact_id" binding:"required"`
}

// OrderHandler handles the buyer's orders
type OrderHandler struct {
	BaseHandler
	orderService *ordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *ordering.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Checkout turns the caller's basket into a placed order
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, req.ContactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the caller's placed orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.orderService.ListOwn(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Get returns one order visible to the caller
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels an order owned by the caller
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PATCH("/:id/cancel", h.Cancel)
	}
}
