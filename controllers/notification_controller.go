// controllers/notification_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/services"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

func (nc *NotificationController) callerID(c echo.Context) (primitive.ObjectID, bool) {
	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

// GetNotifications returns the caller's notifications, newest first.
func (nc *NotificationController) GetNotifications(c echo.Context) error {
	userID, ok := nc.callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	limit := int64(50)
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := nc.notifications.List(c.Request().Context(), userID, limit)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Notifications retrieved successfully",
		Data:    notifications,
	})
}

// GetUnreadCount returns the caller's unread notification count for
// polling readers.
func (nc *NotificationController) GetUnreadCount(c echo.Context) error {
	userID, ok := nc.callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	count, err := nc.notifications.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Unread count retrieved successfully",
		Data:    map[string]interface{}{"unreadCount": count},
	})
}

// MarkRead marks either an explicit list of the caller's notifications
// or all of them as read. The operation is idempotent.
func (nc *NotificationController) MarkRead(c echo.Context) error {
	userID, ok := nc.callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()

	var err error
	if req.All {
		err = nc.notifications.MarkAllRead(ctx, userID)
	} else {
		err = nc.notifications.MarkRead(ctx, userID, req.NotificationIDs)
	}
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Notifications marked as read",
	})
}
