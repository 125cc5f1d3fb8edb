package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
)

// RegisterSalesRoutes sets up the sale workflow routes. Submission is
// open to any role holding sales.submit; the review surface (pending
// queue and resolution) is restricted to approver roles.
func RegisterSalesRoutes(e *echo.Echo, tracker echo.MiddlewareFunc, saleController *controllers.SaleController) {
	sales := e.Group("/api/sales")
	sales.Use(middleware.JWTMiddleware())
	sales.Use(tracker)

	submit := sales.Group("")
	submit.Use(middleware.RequireAccess(middleware.Requirement{
		Permissions: []string{"sales.submit"},
	}))
	submit.POST("", saleController.SubmitSale)

	sales.GET("/mine", saleController.GetMySales)

	review := sales.Group("")
	review.Use(middleware.RequireAccess(middleware.Requirement{
		Roles:       []string{models.RoleAdmin, models.RoleOperations, models.RoleSalesManager},
		Permissions: []string{"sales.approve"},
	}))
	review.GET("/pending", saleController.GetPendingSales)
	review.POST("/:id/resolve", saleController.ResolveSale)

	sales.GET("/:id", saleController.GetSale)
}
