package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fazetwerpgit/saleshub_backend/models"
)

func actorWithRole(role string) *Actor {
	return &Actor{
		UserID:      "user-1",
		Role:        role,
		Permissions: models.PermissionsForRole(role),
	}
}

func TestAllowed_GateMatrix(t *testing.T) {
	tests := []struct {
		name  string
		actor *Actor
		req   Requirement
		want  bool
	}{
		{"nil actor always denied", nil, Requirement{}, false},
		{"nil actor denied even with empty requirement", nil,
			Requirement{Roles: nil, Permissions: nil}, false},
		{"empty requirement admits any actor", actorWithRole(models.RoleSalesRep),
			Requirement{}, true},
		{"role match", actorWithRole(models.RoleAdmin),
			Requirement{Roles: []string{models.RoleAdmin, models.RoleOperations}}, true},
		{"role mismatch", actorWithRole(models.RoleSalesRep),
			Requirement{Roles: []string{models.RoleAdmin}}, false},
		{"permission match", actorWithRole(models.RoleSalesRep),
			Requirement{Permissions: []string{"sales.submit"}}, true},
		{"permission missing", actorWithRole(models.RoleSalesRep),
			Requirement{Permissions: []string{"sales.approve"}}, false},
		{"all permissions required", actorWithRole(models.RoleSalesManager),
			Requirement{Permissions: []string{"sales.approve", "users.manage"}}, false},
		{"roles and permissions are conjunctive", actorWithRole(models.RoleSalesManager),
			Requirement{
				Roles:       []string{models.RoleSalesManager},
				Permissions: []string{"sales.approve"},
			}, true},
		{"role ok but permission missing denies", actorWithRole(models.RoleSalesManager),
			Requirement{
				Roles:       []string{models.RoleSalesManager},
				Permissions: []string{"training.manage"},
			}, false},
		{"permission ok but role missing denies", actorWithRole(models.RoleSalesRep),
			Requirement{
				Roles:       []string{models.RoleAdmin},
				Permissions: []string{"sales.submit"},
			}, false},
		{"unknown role has no permissions", actorWithRole("contractor"),
			Requirement{Permissions: []string{"leaderboard.view"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.actor, tt.req))
		})
	}
}
