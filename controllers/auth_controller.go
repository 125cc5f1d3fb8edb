// controllers/auth_controller.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/models"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/utils"
)

type AuthController struct {
	users repositories.UserRepository
	redis *redis.Client
}

func NewAuthController(users repositories.UserRepository, redisClient *redis.Client) *AuthController {
	return &AuthController{users: users, redis: redisClient}
}

// Signup creates a new portal account. Self-service signups always get
// the sales_rep role; elevated roles are provisioned by an admin
// through the user management endpoints.
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, password and full name are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	ctx := c.Request().Context()

	existing, err := ac.users.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Error checking existing user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An account with this email already exists",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	now := time.Now()
	user := &models.User{
		Email:          email,
		Password:       hash,
		FullName:       utils.SanitizeInput(req.FullName),
		Role:           models.RoleSalesRep,
		Territory:      utils.SanitizeInput(req.Territory),
		Status:         models.UserStatusActive,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := ac.users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "An account with this email already exists",
			})
		}
		log.Printf("Error inserting user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Account created successfully",
		Data:    user,
	})
}

// Login verifies credentials and issues a JWT pair. When RememberMe is
// set a long-lived opaque token is stored in Redis.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	ctx := c.Request().Context()

	user, err := ac.users.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Error finding user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login failed",
		})
	}
	if user == nil || !utils.CheckPassword(user.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}
	if user.Status != models.UserStatusActive {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User account is inactive",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login failed",
		})
	}

	data := map[string]interface{}{
		"token":        token,
		"refreshToken": refreshToken,
		"user": map[string]interface{}{
			"id":       user.ID.Hex(),
			"email":    user.Email,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	}

	if req.RememberMe && ac.redis != nil {
		rememberToken := utils.GenerateRememberMeToken()
		session := utils.RememberedSession{
			UserID:    user.ID.Hex(),
			Email:     user.Email,
			Role:      user.Role,
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		}
		if err := utils.StoreRememberedSession(ac.redis, rememberToken, session, 30*24*time.Hour); err != nil {
			log.Printf("Failed to store remember me session: %v", err)
		} else {
			data["rememberMeToken"] = rememberToken
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    data,
	})
}

// ValidateToken confirms the presented token is still valid and echoes
// its claims so clients can restore a session.
func (ac *AuthController) ValidateToken(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token is valid",
		Data: map[string]interface{}{
			"userId": claims.UserID,
			"email":  claims.Email,
			"role":   claims.Role,
		},
	})
}

// Logout blacklists the presented token until it expires.
func (ac *AuthController) Logout(c echo.Context) error {
	claims := middleware.GetUserFromToken(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	authHeader := c.Request().Header.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		expiry := time.Unix(claims.ExpiresAt, 0)
		if claims.ExpiresAt == 0 {
			expiry = time.Now().Add(24 * time.Hour)
		}
		middleware.BlacklistToken(authHeader[7:], expiry)
	}

	if token := c.QueryParam("rememberMeToken"); token != "" && ac.redis != nil {
		if err := utils.RemoveRememberedSession(ac.redis, token); err != nil {
			log.Printf("Failed to remove remember me session: %v", err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}
