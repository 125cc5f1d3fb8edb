// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin        = "admin"
	RoleOperations   = "operations"
	RoleSalesManager = "sales_manager"
	RoleSalesRep     = "sales_rep"
)

// User statuses
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User model
type User struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string              `json:"email" bson:"email"`
	Password       string              `json:"password,omitempty" bson:"password"`
	FullName       string              `json:"fullName" bson:"fullName"`
	Role           string              `json:"role" bson:"role"`
	ManagerID      *primitive.ObjectID `json:"managerId,omitempty" bson:"managerId,omitempty"`
	Territory      string              `json:"territory,omitempty" bson:"territory,omitempty"`
	Status         string              `json:"status" bson:"status"`
	LastActivityAt time.Time           `json:"lastActivityAt" bson:"lastActivityAt"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// RolePermissions maps each role to its granted permission set.
// Permissions are derived from the role at request time and embedded in
// the actor passed to the authorization gate.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		"users.manage", "sales.submit", "sales.approve", "sales.view_all",
		"leaderboard.view", "training.manage", "notifications.read",
	},
	RoleOperations: {
		"users.manage", "sales.approve", "sales.view_all",
		"leaderboard.view", "training.manage", "notifications.read",
	},
	RoleSalesManager: {
		"sales.approve", "sales.view_all", "leaderboard.view",
		"notifications.read",
	},
	RoleSalesRep: {
		"sales.submit", "leaderboard.view", "notifications.read",
	},
}

// PermissionsForRole returns the permission set granted to a role.
func PermissionsForRole(role string) []string {
	return RolePermissions[role]
}

// SignupRequest is the payload for creating a portal account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"fullName" validate:"required"`
	Role      string `json:"role,omitempty"`
	Territory string `json:"territory,omitempty"`
}

// LoginRequest models
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// UpdateProfileRequest is the payload for profile self-service edits
type UpdateProfileRequest struct {
	FullName  string `json:"fullName,omitempty"`
	Territory string `json:"territory,omitempty"`
}

// UpdateRoleRequest changes a user's role; admin/operations only
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin operations sales_manager sales_rep"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
