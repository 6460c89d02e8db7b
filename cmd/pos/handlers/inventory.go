package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// InventoryHandler handles stock level and movement requests
type InventoryHandler struct {
	inventory *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// RecordInbound receives stock from a supplier
// POST /api/v1/inventory/inbound
func (h *InventoryHandler) RecordInbound(c echo.Context) error {
	var req models.InboundRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	movement, err := h.inventory.RecordInbound(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, movement)
}

// RecordOutbound removes stock outside of a sale
// POST /api/v1/inventory/outbound
func (h *InventoryHandler) RecordOutbound(c echo.Context) error {
	var req models.OutboundRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	movement, err := h.inventory.RecordOutbound(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, movement)
}

// GetStockLevel retrieves one product's current level
// GET /api/v1/inventory/:product_id
func (h *InventoryHandler) GetStockLevel(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return badRequest(c, err)
	}

	level, err := h.inventory.GetStockLevel(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, level)
}

// ListStockLevels lists levels across the active catalog
// GET /api/v1/inventory?limit=&offset=
func (h *InventoryHandler) ListStockLevels(c echo.Context) error {
	levels, err := h.inventory.ListStockLevels(c.Request().Context(), queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"levels": levels,
		"count":  len(levels),
	})
}

// ListLowStock lists products at or below their reorder level
// GET /api/v1/inventory/low
func (h *InventoryHandler) ListLowStock(c echo.Context) error {
	levels, err := h.inventory.ListLowStock(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"levels": levels,
		"count":  len(levels),
	})
}

// SetReorderLevel updates the reorder threshold for a product
// PUT /api/v1/inventory/:product_id/reorder-level
func (h *InventoryHandler) SetReorderLevel(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return badRequest(c, err)
	}

	var req struct {
		ReorderLevel int64 `json:"reorder_level"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	if err := h.inventory.SetReorderLevel(c.Request().Context(), middleware.GetSession(c), productID, req.ReorderLevel); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListMovements retrieves movement history for a product
// GET /api/v1/inventory/:product_id/movements?limit=&offset=
func (h *InventoryHandler) ListMovements(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		return badRequest(c, err)
	}

	movements, err := h.inventory.ListMovements(c.Request().Context(), productID, queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"movements": movements,
		"count":     len(movements),
	})
}
