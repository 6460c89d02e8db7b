package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/middleware"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// UserHandler handles staff-account administration requests
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser creates a staff account
// POST /api/v1/users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err)
	}

	user, err := h.users.CreateUser(c.Request().Context(), middleware.GetSession(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetUser retrieves one user
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateRole changes a user's role
// PUT /api/v1/users/:id/role
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	var req models.UpdateUserRoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if _, err := models.ParseRole(req.Role); err != nil {
		return badRequest(c, err)
	}

	if err := h.users.UpdateRole(c.Request().Context(), middleware.GetSession(c), id, req); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeactivateUser disables a staff account
// DELETE /api/v1/users/:id
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.users.DeactivateUser(c.Request().Context(), middleware.GetSession(c), id); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListUsers lists all staff accounts
// GET /api/v1/users?limit=&offset=
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(
		c.Request().Context(),
		middleware.GetSession(c),
		queryInt(c, "limit", 100),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
	})
}
