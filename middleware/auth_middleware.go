// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/labstack/echo/v4"
)

// Actor is the authenticated principal a gate decision is made for.
type Actor struct {
	UserID      string
	Role        string
	Permissions []string
}

// Requirement expresses what an operation demands of an actor: a set of
// allowed roles, a set of required permissions, or both. When both are
// supplied the actor must satisfy both.
type Requirement struct {
	Roles       []string
	Permissions []string
}

// Allowed is the authorization gate. It is a pure decision function: a
// nil actor is always denied, and an empty requirement admits any
// authenticated actor.
func Allowed(actor *Actor, req Requirement) bool {
	if actor == nil {
		return false
	}

	if len(req.Roles) > 0 {
		matched := false
		for _, role := range req.Roles {
			if actor.Role == role {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, required := range req.Permissions {
		if !hasPermission(actor.Permissions, required) {
			return false
		}
	}

	return true
}

func hasPermission(granted []string, required string) bool {
	for _, p := range granted {
		if p == required {
			return true
		}
	}
	return false
}

// ActorFromContext builds the gate actor from the JWT claims set by
// JWTMiddleware. Permissions are derived from the role.
func ActorFromContext(c echo.Context) *Actor {
	claims := GetUserFromToken(c)
	if claims == nil {
		return nil
	}
	return &Actor{
		UserID:      claims.UserID,
		Role:        claims.Role,
		Permissions: models.PermissionsForRole(claims.Role),
	}
}

// RequireAccess gates a route group on a requirement. Denials answer
// with a generic unauthorized message so callers cannot probe whether
// the target resource exists.
func RequireAccess(req Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFromContext(c)
			if actor == nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			if !Allowed(actor, req) {
				c.Logger().Warnf("Access denied for role %s on %s", actor.Role, c.Request().URL.Path)
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Access denied for your role",
				})
			}

			return next(c)
		}
	}
}

// RequireRole gates a route group on a set of allowed roles.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return RequireAccess(Requirement{Roles: allowedRoles})
}
