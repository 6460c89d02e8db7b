package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// CustomerHandler handles customer version-chain requests
type CustomerHandler struct {
	customers *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// CreateCustomer starts a new customer chain
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var attrs models.CustomerAttrs
	if err := c.Bind(&attrs); err != nil {
		return badRequest(c, err)
	}
	if err := attrs.Validate(); err != nil {
		return badRequest(c, err)
	}

	customer, err := h.customers.CreateCustomer(c.Request().Context(), middleware.GetSession(c), attrs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer supersedes a customer version
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	var attrs models.CustomerAttrs
	if err := c.Bind(&attrs); err != nil {
		return badRequest(c, err)
	}
	if err := attrs.Validate(); err != nil {
		return badRequest(c, err)
	}

	customer, err := h.customers.UpdateCustomer(c.Request().Context(), middleware.GetSession(c), id, attrs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, customer)
}

// GetCustomer retrieves one customer version
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	customer, err := h.customers.GetCustomer(c.Request().Context(), middleware.GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, customer)
}

// GetHistory reconstructs a customer's version chain, oldest first
// GET /api/v1/customers/:id/history
func (h *CustomerHandler) GetHistory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	history, err := h.customers.GetHistory(c.Request().Context(), middleware.GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"versions": history,
		"count":    len(history),
	})
}

// ListCustomers lists active customers
// GET /api/v1/customers?limit=&offset=
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customers.ListCustomers(
		c.Request().Context(),
		middleware.GetSession(c),
		queryInt(c, "limit", 100),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"customers": customers,
		"count":     len(customers),
	})
}

// DeleteCustomer deactivates the active version
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.customers.DeleteCustomer(c.Request().Context(), middleware.GetSession(c), id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
