package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// PromotionHandler handles discount-rule requests
type PromotionHandler struct {
	promotions *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotions *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotions: promotions}
}

// CreatePromotion creates a discount rule
// POST /api/v1/promotions
func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req models.PromotionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	promotion, err := h.promotions.CreatePromotion(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, promotion)
}

// ListPromotions lists active promotions
// GET /api/v1/promotions
func (h *PromotionHandler) ListPromotions(c echo.Context) error {
	promotions, err := h.promotions.ListPromotions(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"promotions": promotions,
		"count":      len(promotions),
	})
}

// DeactivatePromotion retires a rule by code
// DELETE /api/v1/promotions/:code
func (h *PromotionHandler) DeactivatePromotion(c echo.Context) error {
	if err := h.promotions.DeactivatePromotion(c.Request().Context(), middleware.GetSession(c), c.Param("code")); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
