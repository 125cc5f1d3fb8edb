package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
)

// RegisterLeaderboardRoutes sets up the leaderboard route. Any
// authenticated user may view standings.
func RegisterLeaderboardRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, leaderboardController *controllers.LeaderboardController) {
	leaderboard := e.Group("/api/leaderboard")
	leaderboard.Use(middleware.JWTMiddleware())
	leaderboard.Use(tracker)
	leaderboard.Use(middleware.RequireAccess(middleware.Requirement{
		Permissions: []string{"leaderboard.view"},
	}))
	leaderboard.GET("", leaderboardController.GetLeaderboard)
}
