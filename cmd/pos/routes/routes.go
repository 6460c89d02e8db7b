package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/middleware"
	commonmw "github.com/storeline/pos/common/middleware"
)

// apiGroup builds the authenticated /api/v1 group: every request needs a
// valid session, and per-user rate limits apply when enabled.
func apiGroup(e *echo.Echo, c *container.Container) *echo.Group {
	g := e.Group("/api/v1")
	g.Use(middleware.RequireSession(c.UserService))

	cfg := c.Components.Config
	if cfg.Limits.Enabled {
		g.Use(commonmw.UserRateLimitMiddleware(c.RateLimiter, cfg.Limits.UserPerMinute))
	}

	return g
}

// RegisterAll registers every route group on the server
func RegisterAll(e *echo.Echo, c *container.Container) {
	RegisterCatalogRoutes(e, c)
	RegisterSalesRoutes(e, c)
	RegisterEntityRoutes(e, c)
	RegisterInventoryRoutes(e, c)
	RegisterAdminRoutes(e, c)
}
