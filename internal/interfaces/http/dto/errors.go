package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall back to prefix rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	// 400 Bad Request
	"VALIDATION_ERROR": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,
	"TOKEN_EXPIRED":    http.StatusBadRequest,
	"WEAK_PASSWORD":    http.StatusBadRequest,

	// 401 Unauthorized
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,

	// 403 Forbidden
	"FORBIDDEN":        http.StatusForbidden,
	"ACCOUNT_INACTIVE": http.StatusForbidden,

	// 404 Not Found
	"NOT_FOUND":         http.StatusNotFound,
	"SHOP_NOT_FOUND":    http.StatusNotFound,
	"CONTACT_NOT_FOUND": http.StatusNotFound,
	"OFFER_NOT_FOUND":   http.StatusNotFound,
	"ITEM_NOT_FOUND":    http.StatusNotFound,

	// 409 Conflict
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_EMAIL":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// 422 Unprocessable Entity
	"EMPTY_BASKET":         http.StatusUnprocessableEntity,
	"INVALID_BASKET_ITEMS": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,

	// 500 Internal Server Error
	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
