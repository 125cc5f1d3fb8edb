package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
)

// RegisterUserRoutes sets up profile self-service and account
// administration routes.
func RegisterUserRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, userController *controllers.UserController) {
	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.Use(tracker)

	users.GET("/me", userController.GetProfile)
	users.PUT("/me", userController.UpdateProfile)

	admin := users.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin, models.RoleOperations))
	admin.GET("", userController.ListUsers)
	admin.PUT("/:id/role", userController.UpdateRole)
}
