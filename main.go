package main

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/fazetwerpgit/saleshub_backend/config"
	"github.com/fazetwerpgit/saleshub_backend/controllers"
	"github.com/fazetwerpgit/saleshub_backend/middleware"
	"github.com/fazetwerpgit/saleshub_backend/repositories"
	"github.com/fazetwerpgit/saleshub_backend/routes"
	"github.com/fazetwerpgit/saleshub_backend/services"
	"github.com/fazetwerpgit/saleshub_backend/utils"
	"github.com/fazetwerpgit/saleshub_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	redisClient := config.ConnectRedis()
	defer config.CloseRedis()

	// Connect to database
	client := config.ConnectDB()

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
		AllowEval:      false,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "SalesHub Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	saleRepo := repositories.NewSaleRepository(client)
	userRepo := repositories.NewUserRepository(client)
	notificationRepo := repositories.NewNotificationRepository(client)
	trainingRepo := repositories.NewTrainingRepository(client)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	leaderboardService := services.NewLeaderboardService(saleRepo, redisClient)
	saleService := services.NewSaleService(saleRepo, userRepo, notificationService,
		leaderboardService, wsHub, utils.NewSMTPMailer())

	// Register routes. The activity tracker runs inside each
	// JWT-authenticated group so it sees the caller's claims.
	routes.SetupRoutes(e, wsHub, middleware.ActivityTracker(userRepo), routes.Controllers{
		Auth:         controllers.NewAuthController(userRepo, redisClient),
		Sale:         controllers.NewSaleController(saleService, userRepo),
		Leaderboard:  controllers.NewLeaderboardController(leaderboardService),
		Notification: controllers.NewNotificationController(notificationService),
		User:         controllers.NewUserController(userRepo),
		Training:     controllers.NewTrainingController(trainingRepo),
	})

	// Prune expired tokens from the logout blacklist
	go middleware.CleanupBlacklist()

	// Start the inactive user checker in a goroutine
	go func() {
		for {
			middleware.MarkInactiveUsers(client, 30*time.Minute)
			time.Sleep(5 * time.Minute)
		}
	}()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
