package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/smallbiznis/storefront/internal/cart/domain"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	selectiondomain "github.com/smallbiznis/storefront/internal/selection/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Message
}

var ErrNotFound = &apiError{
	Status:  http.StatusNotFound,
	Code:    "not_found",
	Message: "resource not found",
}

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "invalid request body",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

func tooManyRequestsError() *apiError {
	return &apiError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many requests",
	}
}

// AbortWithError renders a domain error as a JSON error envelope.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, selectiondomain.ErrSessionNotFound):
		status, code = http.StatusNotFound, "session_not_found"
	case isSelectionValidationError(err):
		status, code = http.StatusBadRequest, err.Error()
	case errors.Is(err, selectiondomain.ErrNotValidForSubmission):
		status, code = http.StatusConflict, "not_valid_for_submission"
	case errors.Is(err, selectiondomain.ErrNoVariantMatch):
		status, code = http.StatusUnprocessableEntity, "no_variant_match"
	case errors.Is(err, cartdomain.ErrEmptySubmission):
		status, code = http.StatusUnprocessableEntity, "empty_submission"
	case isCartAPIError(err):
		status, code = http.StatusBadGateway, "cart_api_error"
	case errors.Is(err, catalogdomain.ErrCatalogUnavailable):
		status, code = http.StatusServiceUnavailable, "catalog_unavailable"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Status:  status,
		Code:    code,
		Message: err.Error(),
	}})
}

func isSelectionValidationError(err error) bool {
	switch {
	case errors.Is(err, selectiondomain.ErrInvalidPlanType),
		errors.Is(err, selectiondomain.ErrInvalidFlavorSlot):
		return true
	default:
		return false
	}
}

func isCartAPIError(err error) bool {
	var cartErr *cartdomain.APIError
	return errors.As(err, &cartErr)
}
