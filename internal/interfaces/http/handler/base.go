package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/interfaces/http/dto"
	"github.com/retail/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common response helpers for HTTP handlers
type BaseHandler struct{}

// Success sends a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 validation error
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, message))
}

// BindError sends a 400 with per-field details for binding failures
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	details := middleware.ValidationDetails(err)
	if len(details) == 0 {
		h.BadRequest(c, "Invalid request body")
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
		dto.ErrCodeValidation, "Request validation failed", details))
}

// Unauthorized sends a 401 error
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
}

// HandleError maps an application error onto the response envelope.
// Domain errors carry their own code; everything else is a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if len(domainErr.Details) > 0 {
			c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, domainErr.Details))
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error"))
}

// currentUserID extracts the authenticated user's id from the request
// context, answering 401 itself when the claims are missing
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Unauthorized(c)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter as a uuid
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// bindList binds pagination query parameters into a repository filter
func (h *BaseHandler) bindList(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return shared.Filter{}, false
	}
	return req.ToFilter(), true
}
