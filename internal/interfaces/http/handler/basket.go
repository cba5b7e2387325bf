package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retail/backend/internal/application/ordering"
)

// BasketItemRequest is one line of a basket add request
type BasketItemRequest struct {
	OfferID  uuid.UUID `json:"offer_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// AddBasketItemsRequest adds offers to the basket
type AddBasketItemsRequest struct {
	Items []BasketItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BasketUpdateRequest is one line of a basket update request; quantity
// zero removes the line
type BasketUpdateRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"min=0"`
}

// UpdateBasketItemsRequest changes basket line quantities
type UpdateBasketItemsRequest struct {
	Items []BasketUpdateRequest `json:"items" binding:"required,min=1,dive"`
}

// RemoveBasketItemsRequest names the basket lines to remove
type RemoveBasketItemsRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// BasketHandler handles the buyer's basket
type BasketHandler struct {
	BaseHandler
	basketService *ordering.BasketService
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(basketService *ordering.BasketService) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
	}
}

// Get returns the caller's basket with nested items and total
func (h *BasketHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	basket, err := h.basketService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// Add puts offers into the basket. The whole batch is validated against
// live stock first; any failing line rejects the entire request.
func (h *BasketHandler) Add(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req AddBasketItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	items := make([]ordering.BasketItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordering.BasketItemInput{
			OfferID:  item.OfferID,
			Quantity: item.Quantity,
		})
	}

	basket, err := h.basketService.AddItems(c.Request.Context(), userID, items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// Update changes basket line quantities, removing lines set to zero
func (h *BasketHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req UpdateBasketItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updates := make([]ordering.BasketUpdateInput, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, ordering.BasketUpdateInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	basket, err := h.basketService.UpdateItems(c.Request.Context(), userID, updates)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// Remove deletes basket lines by item id
func (h *BasketHandler) Remove(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req RemoveBasketItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	removed, err := h.basketService.RemoveItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"removed": removed})
}

// RegisterRoutes registers all basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket")
	{
		basket.GET("", h.Get)
		basket.POST("", h.Add)
		basket.PUT("", h.Update)
		basket.DELETE("", h.Remove)
	}
}
