package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeSaleApproved    = "sale_approved"
	NotificationTypeSaleRejected    = "sale_rejected"
	NotificationTypeSalePending     = "sale_pending"
	NotificationTypePointsEarned    = "points_earned"
	NotificationTypeLeaderboardRank = "leaderboard_rank"
	NotificationTypeAnnouncement    = "announcement"
	NotificationTypeSystem          = "system"
)

// Notification model
type Notification struct {
	ID        primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"userId" bson:"userId"`
	Type      string                 `json:"type" bson:"type"`
	Title     string                 `json:"title" bson:"title"`
	Message   string                 `json:"message" bson:"message"`
	Link      string                 `json:"link,omitempty" bson:"link,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Read      bool                   `json:"read" bson:"read"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}

// MarkReadRequest marks either an explicit list of notifications or all
// of the caller's notifications as read.
type MarkReadRequest struct {
	NotificationIDs []string `json:"notificationIds,omitempty"`
	All             bool     `json:"all,omitempty"`
}
