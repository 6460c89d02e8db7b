package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// AuditHandler handles audit-log queries
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListEntries lists audit entries, newest first
// GET /api/v1/audit?entity_kind=&entity_id=&limit=&offset=
func (h *AuditHandler) ListEntries(c echo.Context) error {
	filter := models.AuditFilter{
		EntityKind: c.QueryParam("entity_kind"),
		EntityID:   c.QueryParam("entity_id"),
		Limit:      queryInt(c, "limit", 100),
		Offset:     queryInt(c, "offset", 0),
	}

	entries, err := h.audit.List(c.Request().Context(), middleware.GetSession(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
