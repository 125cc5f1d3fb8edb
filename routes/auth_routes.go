package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
)

// RegisterAuthRoutes sets up the public authentication routes.
func RegisterAuthRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, authController *controllers.AuthController) {
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)

	// Logout and validation need the token itself, so the JWT
	// middleware runs for them.
	authed := e.Group("/api/auth")
	authed.Use(middleware.JWTMiddleware())
	authed.Use(tracker)
	authed.POST("/logout", authController.Logout)
	authed.GET("/validate-token", authController.ValidateToken)
}
