package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/container"
	"github.com/storeline/pos/cmd/pos/handlers"
)

// RegisterAdminRoutes registers user administration, expense, audit and
// insight routes
func RegisterAdminRoutes(e *echo.Echo, c *container.Container) {
	users := handlers.NewUserHandler(c.UserService)
	expenses := handlers.NewExpenseHandler(c.ExpenseService)
	audit := handlers.NewAuditHandler(c.AuditService)
	insights := handlers.NewInsightHandler(c.InsightService)

	g := apiGroup(e, c)
	{
		g.POST("/users", users.CreateUser)
		g.GET("/users", users.ListUsers)
		g.GET("/users/:id", users.GetUser)
		g.PUT("/users/:id/role", users.UpdateRole)
		g.DELETE("/users/:id", users.DeactivateUser)

		g.POST("/expenses", expenses.CreateExpense)
		g.GET("/expenses", expenses.ListExpenses)
		g.GET("/expenses/:id", expenses.GetExpense)
		g.DELETE("/expenses/:id", expenses.DeleteExpense)

		g.GET("/audit", audit.ListEntries)
		g.GET("/insights/:kind", insights.GenerateReport)
	}
}
