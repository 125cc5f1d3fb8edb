// services/sale_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
	"github.com/fazetwerpgit/saleshub_backend/websocket"
)

// Mailer sends best-effort email on sale resolution. A nil Mailer
// disables email.
type Mailer interface {
	SendSaleResolved(email string, sale *models.Sale) error
}

// SaleService owns the sale state machine: pending is the only initial
// state, approved and rejected are terminal, and a sale transitions at
// most once. The transition write is conditional on the pending status
// at the store, so concurrent approvers cannot both win.
type SaleService struct {
	sales         repositories.SaleRepository
	users         repositories.UserRepository
	notifications *NotificationService
	leaderboard   *LeaderboardService
	hub           *websocket.Hub
	mailer        Mailer
}

func NewSaleService(
	sales repositories.SaleRepository,
	users repositories.UserRepository,
	notifications *NotificationService,
	leaderboard *LeaderboardService,
	hub *websocket.Hub,
	mailer Mailer,
) *SaleService {
	return &SaleService{
		sales:         sales,
		users:         users,
		notifications: notifications,
		leaderboard:   leaderboard,
		hub:           hub,
		mailer:        mailer,
	}
}

// Submit logs a new sale in pending state, scoring its points from the
// sale type and amount. The rep's manager gets a best-effort pending
// notice.
func (s *SaleService) Submit(ctx context.Context, salesRepID string, req models.SubmitSaleRequest) (*models.Sale, error) {
	if req.Amount <= 0 {
		return nil, utils.NewInvalidInput("Sale amount must be greater than zero")
	}
	if req.SaleType == "" {
		return nil, utils.NewInvalidInput("Sale type is required")
	}

	repID, err := primitive.ObjectIDFromHex(salesRepID)
	if err != nil {
		return nil, utils.NewInvalidInput("Invalid sales rep id")
	}

	rep, err := s.users.FindByID(ctx, repID)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load sales rep", err)
	}
	if rep == nil {
		return nil, utils.NewNotFound("Sales rep not found")
	}

	now := time.Now()
	saleDate := req.SaleDate
	if saleDate.IsZero() {
		saleDate = now
	}

	sale := &models.Sale{
		SalesRepID:   repID,
		SalesRepName: rep.FullName,
		Amount:       req.Amount,
		SaleType:     req.SaleType,
		TotalPoints:  CalculatePoints(req.SaleType, req.Amount),
		Status:       models.SaleStatusPending,
		SaleDate:     saleDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sales.Insert(ctx, sale); err != nil {
		return nil, utils.NewUnavailable("Failed to save sale", err)
	}

	if rep.ManagerID != nil {
		err := s.notifications.Notify(ctx, *rep.ManagerID, models.NotificationTypeSalePending,
			"Sale awaiting approval",
			fmt.Sprintf("%s submitted a %s sale for approval.", rep.FullName, sale.SaleType),
			"/sales/"+sale.ID.Hex(),
			map[string]interface{}{"saleId": sale.ID.Hex()})
		if err != nil {
			log.Printf("Failed to notify manager of pending sale %s: %v", sale.ID.Hex(), err)
		}
	}

	return sale, nil
}

// Resolve applies the one-shot terminal transition. The write is
// conditional on the sale still being pending; when nothing matches the
// follow-up read distinguishes a missing sale from an already-resolved
// one. Notification, email, websocket and cache side effects are
// best-effort and never fail the transition.
func (s *SaleService) Resolve(ctx context.Context, saleID, decision, approverID, approverName, rejectionReason string) (string, error) {
	if decision != models.SaleStatusApproved && decision != models.SaleStatusRejected {
		return "", utils.NewInvalidInput("Decision must be 'approved' or 'rejected'")
	}
	if approverID == "" {
		return "", utils.NewInvalidInput("Approver id is required")
	}

	saleObjID, err := primitive.ObjectIDFromHex(saleID)
	if err != nil {
		return "", utils.NewInvalidInput("Invalid sale id")
	}
	approverObjID, err := primitive.ObjectIDFromHex(approverID)
	if err != nil {
		return "", utils.NewInvalidInput("Invalid approver id")
	}

	sale, err := s.sales.FindByID(ctx, saleObjID)
	if err != nil {
		return "", utils.NewUnavailable("Failed to load sale", err)
	}
	if sale == nil {
		return "", utils.NewNotFound("Sale not found")
	}
	if sale.Status != models.SaleStatusPending {
		return "", utils.NewConflict(fmt.Sprintf("Sale is already %s", sale.Status))
	}

	reason := ""
	if decision == models.SaleStatusRejected {
		reason = rejectionReason
	}

	approvedAt := time.Now()
	matched, err := s.sales.Resolve(ctx, saleObjID, repositories.SaleResolution{
		Status:          decision,
		ApprovedBy:      approverObjID,
		ApproverName:    approverName,
		ApprovedAt:      approvedAt,
		RejectionReason: reason,
	})
	if err != nil {
		return "", utils.NewUnavailable("Failed to update sale", err)
	}
	if !matched {
		// Lost the race to another approver; report the winner's state.
		current, err := s.sales.FindByID(ctx, saleObjID)
		if err != nil || current == nil {
			return "", utils.NewConflict("Sale is already resolved")
		}
		return "", utils.NewConflict(fmt.Sprintf("Sale is already %s", current.Status))
	}

	sale.Status = decision
	sale.ApprovedBy = approverObjID
	sale.ApproverName = approverName
	sale.ApprovedAt = &approvedAt
	sale.RejectionReason = reason

	s.dispatchSideEffects(ctx, sale)

	return decision, nil
}

// dispatchSideEffects runs the fire-and-forget steps after a terminal
// transition. Every failure is logged and swallowed: the lifecycle
// write is authoritative even when a downstream system is down.
func (s *SaleService) dispatchSideEffects(ctx context.Context, sale *models.Sale) {
	if err := s.notifications.DispatchSaleResolved(ctx, sale); err != nil {
		log.Printf("Failed to dispatch notifications for sale %s: %v", sale.ID.Hex(), err)
	}

	if s.mailer != nil {
		rep, err := s.users.FindByID(ctx, sale.SalesRepID)
		if err != nil || rep == nil {
			log.Printf("Failed to load rep for sale %s resolution email", sale.ID.Hex())
		} else if err := s.mailer.SendSaleResolved(rep.Email, sale); err != nil {
			log.Printf("Failed to send resolution email for sale %s: %v", sale.ID.Hex(), err)
		}
	}

	if s.hub != nil {
		event := websocket.Event{
			Type:    websocket.EventTypeSaleResolved,
			Message: fmt.Sprintf("Your sale was %s", sale.Status),
			Data:    sale,
		}
		if err := s.hub.SendToUser(sale.SalesRepID, event); err != nil {
			// Rep is simply not connected; the stored notification covers it.
			log.Printf("Websocket push skipped for sale %s: %v", sale.ID.Hex(), err)
		}
	}

	if sale.Status == models.SaleStatusApproved && s.leaderboard != nil {
		if err := s.leaderboard.InvalidateCache(ctx); err != nil {
			log.Printf("Failed to invalidate leaderboard cache: %v", err)
		}
	}
}

// GetByID returns a single sale. Callers without the view-all grant
// only see their own sales; anyone else's sale reads as not found so
// the response does not reveal whether it exists.
func (s *SaleService) GetByID(ctx context.Context, saleID, callerID string, canViewAll bool) (*models.Sale, error) {
	objID, err := primitive.ObjectIDFromHex(saleID)
	if err != nil {
		return nil, utils.NewInvalidInput("Invalid sale id")
	}

	sale, err := s.sales.FindByID(ctx, objID)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load sale", err)
	}
	if sale == nil {
		return nil, utils.NewNotFound("Sale not found")
	}
	if !canViewAll && sale.SalesRepID.Hex() != callerID {
		return nil, utils.NewNotFound("Sale not found")
	}
	return sale, nil
}

// ListBySalesRep returns a rep's own sales.
func (s *SaleService) ListBySalesRep(ctx context.Context, salesRepID string) ([]models.Sale, error) {
	repID, err := primitive.ObjectIDFromHex(salesRepID)
	if err != nil {
		return nil, utils.NewInvalidInput("Invalid sales rep id")
	}

	sales, err := s.sales.FindBySalesRep(ctx, repID)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load sales", err)
	}
	return sales, nil
}

// ListPending returns all sales awaiting approval.
func (s *SaleService) ListPending(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.sales.FindByStatus(ctx, models.SaleStatusPending)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load pending sales", err)
	}
	return sales, nil
}
