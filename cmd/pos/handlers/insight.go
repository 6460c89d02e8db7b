package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// InsightHandler handles generated-report requests
type InsightHandler struct {
	insights *service.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(insights *service.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

// GenerateReport builds (or serves a cached) report of the given kind
// GET /api/v1/insights/:kind
func (h *InsightHandler) GenerateReport(c echo.Context) error {
	kind := c.Param("kind")
	if !models.ValidInsightKind(kind) {
		return badRequest(c, fmt.Errorf("unknown report kind: %s", kind))
	}

	report, err := h.insights.GenerateReport(c.Request().Context(), middleware.GetSession(c), models.InsightKind(kind))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
