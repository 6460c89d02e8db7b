package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/models"
)

// respondError maps service errors to HTTP responses. Anything not
// recognized is a 500 with a generic body; the detailed error stays in
// the logs.
func respondError(c echo.Context, err error) error {
	if dup, ok := models.IsDuplicateEntity(err); ok {
		return c.JSON(http.StatusConflict, map[string]any{
			"error":         "duplicate_entity",
			"message":       dup.Error(),
			"matched_field": string(dup.Field),
			"entity_id":     dup.EntityID,
			"entity_name":   dup.EntityName,
		})
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{
			"error": "not_found",
		})
	case errors.Is(err, models.ErrVersionSuperseded):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":   "version_superseded",
			"message": "this version has already been superseded; fetch the current one and retry",
		})
	case errors.Is(err, models.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":   "insufficient_stock",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "empty_cart",
		})
	case errors.Is(err, models.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{
			"error": "forbidden",
		})
	case errors.Is(err, models.ErrInsightsDisabled):
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"error":   "insights_disabled",
			"message": "no report generation endpoint is configured",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "internal_error",
		})
	}
}

// badRequest is the response for malformed payloads and failed validation
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":   "bad_request",
		"message": err.Error(),
	})
}
