// controllers/user_controller.go
package controllers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type UserController struct {
	users repositories.UserRepository
}

func NewUserController(users repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// GetProfile returns the authenticated user's own profile.
func (uc *UserController) GetProfile(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	user, err := uc.users.FindByID(c.Request().Context(), objID)
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

// UpdateProfile lets a user edit their own display name and territory.
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	err = uc.users.UpdateProfile(c.Request().Context(), objID,
		utils.SanitizeInput(req.FullName), utils.SanitizeInput(req.Territory))
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
	})
}

// ListUsers returns all portal accounts; admin/operations only.
func (uc *UserController) ListUsers(c echo.Context) error {
	users, err := uc.users.List(c.Request().Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list users",
		})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// UpdateRole changes a user's role; admin/operations only.
func (uc *UserController) UpdateRole(c echo.Context) error {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Role must be one of admin, operations, sales_manager, sales_rep",
		})
	}

	ctx := c.Request().Context()

	target, err := uc.users.FindByID(ctx, targetID)
	if err != nil {
		log.Printf("Error loading user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update role",
		})
	}
	if target == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	if err := uc.users.UpdateRole(ctx, targetID, req.Role); err != nil {
		log.Printf("Error updating role: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update role",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Role updated successfully",
	})
}
