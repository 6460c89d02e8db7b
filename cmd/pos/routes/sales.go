package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/handlers"
)

// RegisterSalesRoutes registers cart, checkout and sale routes
func RegisterSalesRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewCartHandler(c.CartService, c.CheckoutService)

	g := apiGroup(e, c)
	{
		g.GET("/cart", h.GetCart)
		g.PUT("/cart/items", h.SetItem)
		g.DELETE("/cart", h.ClearCart)

		g.POST("/checkout", h.Checkout)
		g.GET("/sales", h.ListSales)
		g.GET("/sales/:id", h.GetReceipt)
	}
}
