package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/handlers"
)

// RegisterInventoryRoutes registers stock level and movement routes
func RegisterInventoryRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewInventoryHandler(c.InventoryService)

	g := apiGroup(e, c)
	{
		g.GET("/inventory", h.ListStockLevels)
		g.GET("/inventory/low", h.ListLowStock)
		g.POST("/inventory/inbound", h.RecordInbound)
		g.POST("/inventory/outbound", h.RecordOutbound)
		g.GET("/inventory/:product_id", h.GetStockLevel)
		g.PUT("/inventory/:product_id/reorder-level", h.SetReorderLevel)
		g.GET("/inventory/:product_id/movements", h.ListMovements)
	}
}
