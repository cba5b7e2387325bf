package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/retail/backend/internal/application/catalog"
	orderingapp "github.com/retail/backend/internal/application/ordering"
	"github.com/retail/backend/internal/domain/ordering"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/pricelist"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// ImportPriceListRequest points at a supplier price-list document
type ImportPriceListRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// SetShopStateRequest toggles whether the shop accepts new orders
type SetShopStateRequest struct {
	State *bool `json:"state" binding:"required"`
}

// ItemUpdateRequest is one line of a supplier order edit; quantity zero
// removes the line
type ItemUpdateRequest struct {
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"min=0"`
}

// UpdateOrderItemsRequest edits order lines belonging to the shop
type UpdateOrderItemsRequest struct {
	OrderID uuid.UUID           `json:"order_id" binding:"required"`
	Updates []ItemUpdateRequest `json:"updates" binding:"required,min=1,dive"`
}

// SetOrderStatusRequest moves an order along the fulfilment flow
type SetOrderStatusRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Status  string    `json:"status" binding:"required"`
}

// PartnerHandler serves the supplier-side API
type PartnerHandler struct {
	BaseHandler
	partnerService *catalogapp.PartnerService
	orderService   *orderingapp.OrderService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService *catalogapp.PartnerService, orderService *orderingapp.OrderService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		orderService:   orderService,
	}
}

// ImportPriceList fetches a price-list document from the given URL and
// wholesale-replaces the caller's shop catalog with it
func (h *PartnerHandler) ImportPriceList(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req ImportPriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.partnerService.ImportFromURL(c.Request.Context(), userID, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ExportPriceList renders the caller's shop catalog back into the
// price-list document shape and serves it as a YAML attachment
func (h *PartnerHandler) ExportPriceList(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.partnerService.Export(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	data, err := pricelist.Encode(doc)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pricelist.yaml"`)
	c.Data(http.StatusOK, "application/x-yaml", data)
}

// GetState returns the shop's accepting-orders state
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	info, err := h.partnerService.GetState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// SetState toggles the shop's accepting-orders state
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req SetShopStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.partnerService.SetState(c.Request.Context(), userID, *req.State)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Orders lists placed orders containing the shop's offers, with items
// filtered to that shop
func (h *PartnerHandler) Orders(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.orderService.PartnerListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// UpdateItems edits order lines belonging to the caller's shop and
// returns the resulting change set
func (h *PartnerHandler) UpdateItems(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updates := make([]orderingapp.ItemUpdateInput, 0, len(req.Updates))
	for _, item := range req.Updates {
		updates = append(updates, orderingapp.ItemUpdateInput{
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
		})
	}

	changes, err := h.orderService.PartnerUpdateItems(c.Request.Context(), userID, req.OrderID, updates)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"changes": changes})
}

// SetStatus moves an order containing the shop's offers forward along
// the fulfilment flow
func (h *PartnerHandler) SetStatus(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	status := ordering.OrderStatus(req.Status)
	if !status.IsValid() {
		h.HandleError(c, shared.NewDomainError("INVALID_STATUS", "Unknown order status"))
		return
	}

	order, err := h.orderService.PartnerSetStatus(c.Request.Context(), userID, req.OrderID, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers all partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner")
	{
		partner.POST("/pricelist", h.ImportPriceList)
		partner.GET("/pricelist", h.ExportPriceList)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.GET("/orders", h.Orders)
		partner.PATCH("/orders/items", h.UpdateItems)
		partner.PATCH("/orders/status", h.SetStatus)
	}
}
