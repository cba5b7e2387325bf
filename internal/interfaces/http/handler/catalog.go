package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retail/backend/internal/application/catalog"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// ProductListRequest narrows the public product listing
type ProductListRequest struct {
	ShopID     string `form:"shop_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// CatalogHandler serves the public catalog listings
type CatalogHandler struct {
	BaseHandler
	catalogService *catalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Categories lists product categories ordered by name
func (h *CatalogHandler) Categories(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.catalogService.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Shops lists shops currently accepting orders
func (h *CatalogHandler) Shops(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.catalogService.ListShops(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Products lists stocked offers from active shops
func (h *CatalogHandler) Products(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	var input catalog.ProductListInput
	if req.ShopID != "" {
		id, err := uuid.Parse(req.ShopID)
		if err != nil {
			h.BadRequest(c, "Invalid shop_id")
			return
		}
		input.ShopID = &id
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category_id")
			return
		}
		input.CategoryID = &id
	}

	page, err := h.catalogService.ListProducts(c.Request.Context(), input, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.Categories)
	rg.GET("/shops", h.Shops)
	rg.GET("/products", h.Products)
}
