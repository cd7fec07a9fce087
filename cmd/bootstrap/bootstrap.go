package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-whatsapp-scheduler/config"
	deliveryHttp "clinic-whatsapp-scheduler/internal/delivery/http"
	"clinic-whatsapp-scheduler/internal/delivery/http/handler"
	"clinic-whatsapp-scheduler/internal/delivery/http/middleware"
	"clinic-whatsapp-scheduler/internal/infrastructure/cache"
	"clinic-whatsapp-scheduler/internal/infrastructure/database"
	"clinic-whatsapp-scheduler/internal/infrastructure/whatsapp"
	"clinic-whatsapp-scheduler/internal/repository"
	"clinic-whatsapp-scheduler/internal/service"
	"clinic-whatsapp-scheduler/internal/usecase"
	"clinic-whatsapp-scheduler/pkg/jwt"
	"clinic-whatsapp-scheduler/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Clinic timezone drives the calendar policy
	loc, err := time.LoadLocation(cfg.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic timezone %q: %w", cfg.Clinic.Timezone, err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	calendarService := service.NewCalendarService(loc)
	slotService := service.NewRedisSlotService(redisClient, log, loc)
	whatsappClient := whatsapp.NewClient(cfg.WhatsApp, log)

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Clinic.SessionTTL)

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, appointmentRepo, calendarService, slotService)
	conversationUsecase := usecase.NewConversationUsecase(log, sessionRepo, availabilityUsecase, whatsappClient)
	adminUsecase := usecase.NewAdminUsecase(db, log, appointmentRepo, sessionRepo, slotService)
	authUsecase := usecase.NewAuthUsecase(log, cfg.Admin, jwtService, redisClient)

	// Initialize handlers
	webhookHandler := handler.NewWebhookHandler(conversationUsecase, cfg.WhatsApp.VerifyToken, log)
	adminHandler := handler.NewAdminHandler(adminUsecase, availabilityUsecase, customValidator)
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Admin.Token, jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(webhookHandler, adminHandler, authHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
