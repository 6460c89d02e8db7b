package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// CartHandler handles cart and checkout requests
type CartHandler struct {
	carts    *service.CartService
	checkout *service.CheckoutService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
	}
}

// GetCart retrieves the caller's cart
// GET /api/v1/cart
func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.carts.GetCart(c.Request().Context(), middleware.GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

// SetItem sets the quantity of one product in the caller's cart
// PUT /api/v1/cart/items
func (h *CartHandler) SetItem(c echo.Context) error {
	var req models.SetItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	cart, err := h.carts.SetItem(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, cart)
}

// ClearCart drops the caller's cart
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.carts.ClearCart(c.Request().Context(), middleware.GetSession(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout finalizes the caller's cart into a sale
// POST /api/v1/checkout?promotion=CODE
func (h *CartHandler) Checkout(c echo.Context) error {
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	receipt, err := h.checkout.Checkout(
		c.Request().Context(),
		middleware.GetSession(c),
		req,
		c.QueryParam("promotion"),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, receipt)
}

// GetReceipt retrieves a past sale with its lines
// GET /api/v1/sales/:id
func (h *CartHandler) GetReceipt(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	receipt, err := h.checkout.GetReceipt(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// ListSales lists sales newest first
// GET /api/v1/sales?limit=&offset=
func (h *CartHandler) ListSales(c echo.Context) error {
	sales, err := h.checkout.ListSales(c.Request().Context(), queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sales": sales,
		"count": len(sales),
	})
}
