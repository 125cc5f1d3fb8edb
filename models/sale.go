// models/sale.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale statuses. A sale starts pending and transitions exactly once to
// approved or rejected; both are terminal.
const (
	SaleStatusPending  = "pending"
	SaleStatusApproved = "approved"
	SaleStatusRejected = "rejected"
)

// Sale model
type Sale struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SalesRepID      primitive.ObjectID `json:"salesRepId" bson:"salesRepId"`
	SalesRepName    string             `json:"salesRepName" bson:"salesRepName"`
	Amount          float64            `json:"amount" bson:"amount"`
	SaleType        string             `json:"saleType" bson:"saleType"`
	TotalPoints     int                `json:"totalPoints" bson:"totalPoints,omitempty"`
	Status          string             `json:"status" bson:"status"`
	SaleDate        time.Time          `json:"saleDate" bson:"saleDate,omitempty"`
	ApprovedBy      primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApproverName    string             `json:"approverName,omitempty" bson:"approverName,omitempty"`
	ApprovedAt      *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectionReason string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SubmitSaleRequest is the payload for logging a new sale
type SubmitSaleRequest struct {
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	SaleType string    `json:"saleType" validate:"required"`
	SaleDate time.Time `json:"saleDate,omitempty"`
}

// ResolveSaleRequest is the payload for approving or rejecting a sale
type ResolveSaleRequest struct {
	Decision        string `json:"decision" validate:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}
