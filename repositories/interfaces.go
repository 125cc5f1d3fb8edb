package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fazetwerpgit/saleshub_backend/models"
)

// SaleResolution is the terminal write applied to a pending sale.
type SaleResolution struct {
	Status          string
	ApprovedBy      primitive.ObjectID
	ApproverName    string
	ApprovedAt      time.Time
	RejectionReason string
}

// SaleRepository handles the sale ledger.
type SaleRepository interface {
	// Insert persists a new sale and fills in its ID.
	Insert(ctx context.Context, sale *models.Sale) error

	// FindByID returns nil, nil if the sale does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sale, error)

	// FindByStatus returns all sales with the given status. The date
	// filter for leaderboard windows is applied by the caller so the
	// store only needs the single-field status index.
	FindByStatus(ctx context.Context, status string) ([]models.Sale, error)

	// FindBySalesRep returns a rep's sales, newest first.
	FindBySalesRep(ctx context.Context, repID primitive.ObjectID) ([]models.Sale, error)

	// Resolve applies a terminal transition with a conditional write:
	// the update only matches while the sale is still pending. Returns
	// false when nothing matched, meaning the sale is either absent or
	// already resolved.
	Resolve(ctx context.Context, id primitive.ObjectID, res SaleResolution) (bool, error)
}

// NotificationRepository handles per-user workflow notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error)

	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)

	// MarkRead flips the read flag on the given ids. Already-read ids
	// are a no-op, never an error.
	MarkRead(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) error

	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
}

// UserRepository handles portal accounts.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error

	// FindByID returns nil, nil if not found.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByEmail returns nil, nil if not found.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	List(ctx context.Context) ([]models.User, error)

	UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, territory string) error

	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error

	// TouchActivity bumps the user's last-seen timestamp.
	TouchActivity(ctx context.Context, id primitive.ObjectID) error
}

// TrainingRepository handles training resources and per-user progress.
type TrainingRepository interface {
	InsertResource(ctx context.Context, resource *models.TrainingResource) error
	FindResourceByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingResource, error)
	ListResources(ctx context.Context) ([]models.TrainingResource, error)
	UpdateResource(ctx context.Context, id primitive.ObjectID, resource *models.TrainingResource) error
	DeleteResource(ctx context.Context, id primitive.ObjectID) error

	// UpsertProgress records completion state; one record per user per
	// resource.
	UpsertProgress(ctx context.Context, progress *models.UserProgress) error
	ListProgressByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserProgress, error)
}
