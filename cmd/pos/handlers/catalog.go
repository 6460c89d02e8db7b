package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// CatalogHandler handles product catalog requests
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreateProduct creates a product
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct retrieves one product
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct rewrites a product's attributes
// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), middleware.GetSession(c), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// DeactivateProduct soft-deletes a product
// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeactivateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.catalog.DeactivateProduct(c.Request().Context(), middleware.GetSession(c), id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListProducts lists active products
// GET /api/v1/products?category=&search=&limit=&offset=
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := models.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Limit:    queryInt(c, "limit", 100),
		Offset:   queryInt(c, "offset", 0),
	}

	products, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products": products,
		"count":    len(products),
	})
}

// queryInt parses an integer query parameter with a default
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
