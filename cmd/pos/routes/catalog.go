package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/handlers"
)

// RegisterCatalogRoutes registers product and promotion routes
func RegisterCatalogRoutes(e *echo.Echo, c *container.Container) {
	products := handlers.NewCatalogHandler(c.CatalogService)
	promotions := handlers.NewPromotionHandler(c.PromotionService)

	g := apiGroup(e, c)
	{
		g.POST("/products", products.CreateProduct)
		g.GET("/products", products.ListProducts)
		g.GET("/products/:id", products.GetProduct)
		g.PUT("/products/:id", products.UpdateProduct)
		g.DELETE("/products/:id", products.DeactivateProduct)

		g.POST("/promotions", promotions.CreatePromotion)
		g.GET("/promotions", promotions.ListPromotions)
		g.DELETE("/promotions/:code", promotions.DeactivatePromotion)
	}
}
