// controllers/leaderboard_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/services"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

// GetLeaderboard returns ranked standings over the requested window.
// Unrecognized periods fall back to month and unrecognized metrics to
// totalPoints; the resolved period and start date are echoed back.
func (lc *LeaderboardController) GetLeaderboard(c echo.Context) error {
	period := c.QueryParam("period")
	metric := c.QueryParam("metric")

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Limit must be a positive integer",
			})
		}
		limit = parsed
	}

	result, err := lc.leaderboard.Aggregate(c.Request().Context(), period, metric, limit)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Leaderboard retrieved successfully",
		Data:    result,
	})
}
