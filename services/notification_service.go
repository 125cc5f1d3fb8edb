// services/notification_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

// NotificationService creates workflow notifications and serves the
// polling read side (lists, unread counts, read-state flips). It holds
// no unread counter itself; it only flips read flags.
type NotificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify inserts a single unread notification. Each notification gets a
// uuid event id in its metadata for correlation.
func (s *NotificationService) Notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message, link string, metadata map[string]interface{}) error {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	metadata["eventId"] = uuid.NewString()

	notification := &models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Link:      link,
		Metadata:  metadata,
		Read:      false,
		CreatedAt: time.Now(),
	}

	return s.repo.Insert(ctx, notification)
}

// DispatchSaleResolved applies the fan-out policy for a resolved sale:
// on approval a general notice plus a separate points notice when
// points were earned, on rejection a single notice carrying the reason.
// Both notices reference the sale id in metadata for correlation.
func (s *NotificationService) DispatchSaleResolved(ctx context.Context, sale *models.Sale) error {
	metadata := map[string]interface{}{"saleId": sale.ID.Hex()}
	link := "/sales/" + sale.ID.Hex()

	if sale.Status == models.SaleStatusApproved {
		err := s.Notify(ctx, sale.SalesRepID, models.NotificationTypeSaleApproved,
			"Sale approved",
			fmt.Sprintf("Your %s sale was approved by %s.", sale.SaleType, sale.ApproverName),
			link, metadata)
		if err != nil {
			return err
		}

		if sale.TotalPoints > 0 {
			pointsMeta := map[string]interface{}{"saleId": sale.ID.Hex(), "points": sale.TotalPoints}
			return s.Notify(ctx, sale.SalesRepID, models.NotificationTypePointsEarned,
				"Points earned",
				fmt.Sprintf("You earned %d points for your approved sale.", sale.TotalPoints),
				link, pointsMeta)
		}
		return nil
	}

	message := "Your sale was not approved."
	if sale.RejectionReason != "" {
		message = fmt.Sprintf("Your sale was not approved: %s", sale.RejectionReason)
	}
	return s.Notify(ctx, sale.SalesRepID, models.NotificationTypeSaleRejected,
		"Sale rejected", message, link, metadata)
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.NewUnavailable("Failed to load notifications", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, utils.NewUnavailable("Failed to count notifications", err)
	}
	return count, nil
}

// MarkRead flips the read flag on the given notification ids. Marking
// an already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID primitive.ObjectID, ids []string) error {
	if len(ids) == 0 {
		return utils.NewInvalidInput("No notification ids supplied")
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return utils.NewInvalidInput("Invalid notification id: " + id)
		}
		objIDs = append(objIDs, objID)
	}

	if err := s.repo.MarkRead(ctx, userID, objIDs); err != nil {
		return utils.NewUnavailable("Failed to mark notifications read", err)
	}
	return nil
}

// MarkAllRead flips the read flag on all of a user's notifications.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return utils.NewUnavailable("Failed to mark notifications read", err)
	}
	return nil
}
