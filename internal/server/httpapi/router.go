// Package httpapi exposes the authentication and expense workflows over a
// JSON HTTP API.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/services"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(logger logging.Logger, userService *services.UserService, expenseService *services.ExpenseService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	authHandler := NewAuthHandler(userService, logger)
	expenseHandler := NewExpenseHandler(expenseService, logger)

	api := r.Group("/api")
	{
		api.POST("/users", authHandler.Register)
		api.POST("/authenticate", authHandler.Login)
		api.POST("/authenticate/refresh", authHandler.Refresh)

		expenses := api.Group("/expenses")
		expenses.Use(Authenticated(userService))
		{
			expenses.POST("", expenseHandler.Add)
			expenses.GET("", expenseHandler.List)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}
	}

	return r
}
