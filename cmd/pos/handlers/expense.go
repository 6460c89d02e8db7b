package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// ExpenseHandler handles expense-log requests
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// CreateExpense logs one expense entry
// POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req models.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if _, err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	expense, err := h.expenses.CreateExpense(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, expense)
}

// GetExpense retrieves one expense
// GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	expense, err := h.expenses.GetExpense(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes a mislogged expense entry
// DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.expenses.DeleteExpense(c.Request().Context(), middleware.GetSession(c), id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListExpenses lists expenses filtered by category and date window
// GET /api/v1/expenses?category=&from=&to=&limit=&offset=
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	from, err := queryDate(c, "from")
	if err != nil {
		return badRequest(c, err)
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return badRequest(c, err)
	}

	expenses, err := h.expenses.ListExpenses(
		c.Request().Context(),
		c.QueryParam("category"),
		from, to,
		queryInt(c, "limit", 100),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

// queryDate parses a YYYY-MM-DD query parameter; empty means unset
func queryDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
