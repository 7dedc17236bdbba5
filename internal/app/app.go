package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"juaconnect_backend/internal/config"
	"juaconnect_backend/internal/database"
	"juaconnect_backend/internal/email"
	"juaconnect_backend/internal/handlers"
	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/middleware"
	"juaconnect_backend/internal/repositories"
	"juaconnect_backend/internal/routes"
	"juaconnect_backend/internal/services"
	"juaconnect_backend/internal/validator"
)

func Run() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// Split out from Run so tests can mount the full API over any database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	emailProvider := email.NewProviderFromConfig(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	requestRepo := repositories.NewRequestRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, emailProvider)
	userService := services.NewUserService(userRepo, reviewRepo)
	requestService := services.NewRequestService(requestRepo, bookingRepo, userRepo, notificationService)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, requestRepo, userRepo)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, authService, userService),
		ArtisanHandler:      handlers.NewArtisanHandler(base, userService, requestService, reviewService),
		ClientHandler:       handlers.NewClientHandler(base, requestService, reviewService),
		NotificationHandler: handlers.NewNotificationHandler(base, notificationService),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		gin.Recovery(),
	)

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}
