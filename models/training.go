package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingResource model
type TrainingResource struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Category    string             `json:"category" bson:"category"`
	URL         string             `json:"url" bson:"url"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserProgress tracks a user's completion of a training resource
type UserProgress struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	ResourceID  primitive.ObjectID `json:"resourceId" bson:"resourceId"`
	Completed   bool               `json:"completed" bson:"completed"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// TrainingResourceRequest is the payload for creating or updating a resource
type TrainingResourceRequest struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description,omitempty"`
}

// ProgressRequest marks a training resource completed or not
type ProgressRequest struct {
	ResourceID string `json:"resourceId" validate:"required"`
	Completed  bool   `json:"completed"`
}
