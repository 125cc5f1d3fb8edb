package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
)

// RegisterTrainingRoutes sets up the training resource routes. Reads
// are open to all authenticated users; resource management is
// restricted to admin and operations.
func RegisterTrainingRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, trainingController *controllers.TrainingController) {
	training := e.Group("/api/training")
	training.Use(middleware.JWTMiddleware())
	training.Use(tracker)

	training.GET("/resources", trainingController.ListResources)
	training.POST("/progress", trainingController.MarkProgress)
	training.GET("/progress", trainingController.GetMyProgress)

	manage := training.Group("/resources")
	manage.Use(middleware.RequireRole(models.RoleAdmin, models.RoleOperations))
	manage.POST("", trainingController.CreateResource)
	manage.PUT("/:id", trainingController.UpdateResource)
	manage.DELETE("/:id", trainingController.DeleteResource)
}
