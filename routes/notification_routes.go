package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
)

// RegisterNotificationRoutes sets up the notification inbox routes.
// Every route is scoped to the authenticated caller's own inbox.
func RegisterNotificationRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, notificationController *controllers.NotificationController) {
	notifications := e.Group("/api/notifications")
	notifications.Use(middleware.JWTMiddleware())
	notifications.Use(tracker)

	notifications.GET("", notificationController.GetNotifications)
	notifications.GET("/unread-count", notificationController.GetUnreadCount)
	notifications.POST("/mark-read", notificationController.MarkRead)
}
