// controllers/sale_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/services"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type SaleController struct {
	sales *services.SaleService
	users repositories.UserRepository
}

func NewSaleController(sales *services.SaleService, users repositories.UserRepository) *SaleController {
	return &SaleController{sales: sales, users: users}
}

// SubmitSale logs a new sale for the authenticated rep; it starts in
// pending state.
func (sc *SaleController) SubmitSale(c echo.Context) error {
	var req models.SubmitSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Amount and sale type are required",
		})
	}

	userID := middleware.GetUserIDFromToken(c)
	sale, err := sc.sales.Submit(c.Request().Context(), userID, req)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Sale submitted for approval",
		Data:    sale,
	})
}

// GetMySales returns the authenticated rep's own sales.
func (sc *SaleController) GetMySales(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)

	sales, err := sc.sales.ListBySalesRep(c.Request().Context(), userID)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sales retrieved successfully",
		Data:    sales,
	})
}

// GetPendingSales returns all sales awaiting a decision.
func (sc *SaleController) GetPendingSales(c echo.Context) error {
	sales, err := sc.sales.ListPending(c.Request().Context())
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending sales retrieved successfully",
		Data:    sales,
	})
}

// GetSale returns a single sale by id. Reps only see their own sales;
// approver roles see every sale.
func (sc *SaleController) GetSale(c echo.Context) error {
	actor := middleware.ActorFromContext(c)
	if actor == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	canViewAll := middleware.Allowed(actor, middleware.Requirement{
		Permissions: []string{"sales.view_all"},
	})

	sale, err := sc.sales.GetByID(c.Request().Context(), c.Param("id"), actor.UserID, canViewAll)
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sale retrieved successfully",
		Data:    sale,
	})
}

// ResolveSale approves or rejects a pending sale. The response carries
// only the new status; clients re-fetch the record if they need it.
func (sc *SaleController) ResolveSale(c echo.Context) error {
	var req models.ResolveSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Decision must be 'approved' or 'rejected'",
		})
	}

	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()

	approverName := ""
	if approverObjID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
		if approver, err := sc.users.FindByID(ctx, approverObjID); err == nil && approver != nil {
			approverName = approver.FullName
		}
	}

	status, err := sc.sales.Resolve(ctx, c.Param("id"), req.Decision, claims.UserID, approverName, utils.SanitizeInput(req.RejectionReason))
	if err != nil {
		appErr := utils.AsAppError(err)
		return c.JSON(utils.HTTPStatus(err), models.Response{
			Status:  utils.HTTPStatus(err),
			Message: appErr.Message,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Sale " + status + " successfully",
		Data:    map[string]interface{}{"status": status},
	})
}
