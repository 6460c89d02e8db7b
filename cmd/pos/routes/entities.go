package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/handlers"
)

// RegisterEntityRoutes registers customer and supplier version-chain routes
func RegisterEntityRoutes(e *echo.Echo, c *container.Container) {
	customers := handlers.NewCustomerHandler(c.CustomerService)
	suppliers := handlers.NewSupplierHandler(c.SupplierService)

	g := apiGroup(e, c)
	{
		g.POST("/customers", customers.CreateCustomer)
		g.GET("/customers", customers.ListCustomers)
		g.GET("/customers/:id", customers.GetCustomer)
		g.PUT("/customers/:id", customers.UpdateCustomer)
		g.DELETE("/customers/:id", customers.DeleteCustomer)
		g.GET("/customers/:id/history", customers.GetHistory)

		g.POST("/suppliers", suppliers.CreateSupplier)
		g.GET("/suppliers", suppliers.ListSuppliers)
		g.GET("/suppliers/:id", suppliers.GetSupplier)
		g.PUT("/suppliers/:id", suppliers.UpdateSupplier)
		g.DELETE("/suppliers/:id", suppliers.DeleteSupplier)
		g.GET("/suppliers/:id/history", suppliers.GetHistory)
	}
}
