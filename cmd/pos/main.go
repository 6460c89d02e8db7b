package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/routes"
	"github.com/storeline/pos/common/bootstrap"
	"github.com/storeline/pos/common/db"
	commonmw "github.com/storeline/pos/common/middleware"
	"github.com/storeline/pos/common/server"
	"github.com/storeline/pos/migrations"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, DB, queue, cache,
	// telemetry); migrations run inside the DB init hook
	components, err := bootstrap.Setup(ctx, "pos",
		bootstrap.WithDBInitHook(func(database *db.DB) error {
			return db.RunMigrations(ctx, database, migrations.FS)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap pos: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(ctx, components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho(serviceContainer)
	setupHealthCheck(e, serviceContainer)
	routes.RegisterAll(e, serviceContainer)

	srv := server.New("pos", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server and its base middleware
func setupEcho(c *container.Container) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	cfg := c.Components.Config
	if cfg.Limits.Enabled {
		e.Use(commonmw.GlobalRateLimitMiddleware(c.RateLimiter, cfg.Limits.GlobalPerMinute))
	}

	return e
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, c *container.Container) {
	e.GET("/health", func(ec echo.Context) error {
		if err := c.Components.DB.Health(ec.Request().Context()); err != nil {
			return ec.JSON(503, map[string]string{
				"status":  "degraded",
				"service": "pos",
			})
		}
		return ec.JSON(200, map[string]string{
			"status":  "ok",
			"service": "pos",
		})
	})
}
