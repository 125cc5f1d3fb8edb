// controllers/training_controller.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type TrainingController struct {
	training repositories.TrainingRepository
}

func NewTrainingController(training repositories.TrainingRepository) *TrainingController {
	return &TrainingController{training: training}
}

// CreateResource adds a training resource; admin/operations only.
func (tc *TrainingController) CreateResource(c echo.Context) error {
	var req models.TrainingResourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, category and a valid URL are required",
		})
	}

	now := time.Now()
	resource := &models.TrainingResource{
		Title:       utils.SanitizeInput(req.Title),
		Category:    utils.SanitizeInput(req.Category),
		URL:         req.URL,
		Description: utils.SanitizeInput(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := tc.training.InsertResource(c.Request().Context(), resource); err != nil {
		log.Printf("Error creating training resource: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create training resource",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Training resource created successfully",
		Data:    resource,
	})
}

// ListResources returns all training resources.
func (tc *TrainingController) ListResources(c echo.Context) error {
	resources, err := tc.training.ListResources(c.Request().Context())
	if err != nil {
		log.Printf("Error listing training resources: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list training resources",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Training resources retrieved successfully",
		Data:    resources,
	})
}

// UpdateResource edits a training resource; admin/operations only.
func (tc *TrainingController) UpdateResource(c echo.Context) error {
	resourceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid resource id",
		})
	}

	var req models.TrainingResourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, category and a valid URL are required",
		})
	}

	ctx := c.Request().Context()

	existing, err := tc.training.FindResourceByID(ctx, resourceID)
	if err != nil {
		log.Printf("Error loading training resource: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update training resource",
		})
	}
	if existing == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Training resource not found",
		})
	}

	updated := &models.TrainingResource{
		Title:       utils.SanitizeInput(req.Title),
		Category:    utils.SanitizeInput(req.Category),
		URL:         req.URL,
		Description: utils.SanitizeInput(req.Description),
	}

	if err := tc.training.UpdateResource(ctx, resourceID, updated); err != nil {
		log.Printf("Error updating training resource: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update training resource",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Training resource updated successfully",
	})
}

// DeleteResource removes a training resource; admin/operations only.
func (tc *TrainingController) DeleteResource(c echo.Context) error {
	resourceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid resource id",
		})
	}

	if err := tc.training.DeleteResource(c.Request().Context(), resourceID); err != nil {
		log.Printf("Error deleting training resource: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete training resource",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Training resource deleted successfully",
	})
}

// MarkProgress records the caller's completion state for a resource.
func (tc *TrainingController) MarkProgress(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.ProgressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Resource id is required",
		})
	}

	resourceID, err := primitive.ObjectIDFromHex(req.ResourceID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid resource id",
		})
	}

	ctx := c.Request().Context()

	resource, err := tc.training.FindResourceByID(ctx, resourceID)
	if err != nil {
		log.Printf("Error loading training resource: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record progress",
		})
	}
	if resource == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Training resource not found",
		})
	}

	progress := &models.UserProgress{
		UserID:     userObjID,
		ResourceID: resourceID,
		Completed:  req.Completed,
	}
	if req.Completed {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := tc.training.UpsertProgress(ctx, progress); err != nil {
		log.Printf("Error recording progress: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record progress",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Progress recorded successfully",
	})
}

// GetMyProgress returns the caller's progress records.
func (tc *TrainingController) GetMyProgress(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	progress, err := tc.training.ListProgressByUser(c.Request().Context(), userObjID)
	if err != nil {
		log.Printf("Error listing progress: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to list progress",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Progress retrieved successfully",
		Data:    progress,
	})
}
