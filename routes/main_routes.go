package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/websocket"
)

// Controllers bundles everything SetupRoutes needs to wire the API.
type Controllers struct {
	Auth         *controllers.AuthController
	Sale         *controllers.SaleController
	Leaderboard  *controllers.LeaderboardController
	Notification *controllers.NotificationController
	User         *controllers.UserController
	Training     *controllers.TrainingController
}

// SetupRoutes configures all API routes by calling individual route
// registration functions. The tracker middleware runs after the JWT
// middleware on every authenticated group so it sees the caller's
// claims.
func SetupRoutes(e *echo.Echo, hub *websocket.Hub, tracker echo.MiddlewareFunc, c Controllers) {
	RegisterAuthRoutes(e, tracker, c.Auth)
	RegisterSalesRoutes(e, tracker, c.Sale)
	RegisterLeaderboardRoutes(e, tracker, c.Leaderboard)
	RegisterNotificationRoutes(e, tracker, c.Notification)
	RegisterUserRoutes(e, tracker, c.User)
	RegisterTrainingRoutes(e, tracker, c.Training)

	// WebSocket endpoint for live workflow events. The JWT middleware
	// runs first so the connection is registered under the caller's id.
	ws := e.Group("/api/ws")
	ws.Use(middleware.JWTMiddleware())
	ws.Use(tracker)
	ws.GET("", func(c echo.Context) error {
		userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
		if err != nil {
			return echo.ErrUnauthorized
		}
		return websocket.HandleWebSocket(c, hub, userID)
	})
}
