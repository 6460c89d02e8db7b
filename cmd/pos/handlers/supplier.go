package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// SupplierHandler handles supplier version-chain requests
type SupplierHandler struct {
	suppliers *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(suppliers *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// CreateSupplier starts a new supplier chain
// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c echo.Context) error {
	var attrs models.SupplierAttrs
	if err := c.Bind(&attrs); err != nil {
		return badRequest(c, err)
	}
	if err := attrs.Validate(); err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.suppliers.CreateSupplier(c.Request().Context(), middleware.GetSession(c), attrs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier supersedes a supplier version
// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	var attrs models.SupplierAttrs
	if err := c.Bind(&attrs); err != nil {
		return badRequest(c, err)
	}
	if err := attrs.Validate(); err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.suppliers.UpdateSupplier(c.Request().Context(), middleware.GetSession(c), id, attrs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// GetSupplier retrieves one supplier version
// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	supplier, err := h.suppliers.GetSupplier(c.Request().Context(), middleware.GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, supplier)
}

// GetHistory reconstructs a supplier's version chain, oldest first
// GET /api/v1/suppliers/:id/history
func (h *SupplierHandler) GetHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	history, err := h.suppliers.GetHistory(c.Request().Context(), middleware.GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"versions": history,
		"count":    len(history),
	})
}

// ListSuppliers lists active suppliers
// GET /api/v1/suppliers?limit=&offset=
func (h *SupplierHandler) ListSuppliers(c echo.Context) error {
	suppliers, err := h.suppliers.ListSuppliers(
		c.Request().Context(),
		middleware.GetSession(c),
		queryInt(c, "limit", 100),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// DeleteSupplier deactivates the active version
// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.suppliers.DeleteSupplier(c.Request().Context(), middleware.GetSession(c), id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
