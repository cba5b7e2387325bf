package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retail/backend/internal/application/identity"
)

// ContactRequest carries a delivery contact's fields
type ContactRequest struct {
	City      string `json:"city" binding:"required"`
	Street    string `json:"street" binding:"required"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" binding:"required"`
}

// DeleteContactsRequest names the contacts to remove
type DeleteContactsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// ContactHandler handles the caller's delivery contacts
type ContactHandler struct {
	BaseHandler
	contactService *identity.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *identity.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// List returns all of the caller's contacts
func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contacts)
}

// Create adds a delivery contact for the caller
func (h *ContactHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), identity.CreateContactInput{
		UserID:    userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, contact)
}

// Update replaces the fields of one of the caller's contacts
func (h *ContactHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	contactID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), identity.UpdateContactInput{
		ContactID: contactID,
		ActorID:   userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete removes the named contacts of the caller
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req DeleteContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deleted, err := h.contactService.DeleteContacts(c.Request.Context(), userID, req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}

// RegisterRoutes registers all contact routes
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	{
		contacts.GET("", h.List)
		contacts.POST("", h.Create)
		contacts.PUT("/:id", h.Update)
		contacts.DELETE("", h.Delete)
	}
}
