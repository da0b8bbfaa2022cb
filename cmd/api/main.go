package main

import (
	"fmt"
	"net/http"
	"os"

	"hearthbook/internal/cache"
	"hearthbook/internal/config"
	"hearthbook/internal/database"
	"hearthbook/internal/handlers"
	"hearthbook/internal/logger"
	"hearthbook/internal/middleware"
	"hearthbook/internal/models"
	"hearthbook/internal/services"
	"hearthbook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hearthbook/internal/docs" // Import swagger docs
)

// @title           Hearthbook API
// @version         1.0
// @description     Hearthbook is a household finance tracker with a fully audited asset inventory, a transaction ledger, and derived value-over-time and monthly category aggregates.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userCache := cache.New[*models.User](appConfig.UserCacheTTL)
	userService := services.NewUserService(db, userCache)
	auditService := services.NewAuditService(db)
	snapshotService := services.NewSnapshotService(db)
	statsService := services.NewStatsService(db)
	ledgerLogService := services.NewLedgerLogService(db)
	assetService := services.NewAssetService(db, auditService, snapshotService)
	ledgerService := services.NewLedgerService(db, ledgerLogService, userService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService, snapshotService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, ledgerLogService, statsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// User routes
	v1.POST("/users", userHandler.CreateUser)

	// Asset routes
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.GET("/growth", assetHandler.GetGrowth)
	assets.GET("/history", assetHandler.GetHistory)
	assets.GET("/:id", assetHandler.GetAssetByID)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)

	// Ledger routes
	ledger := v1.Group("/ledger")
	ledger.POST("", ledgerHandler.CreateEntry)
	ledger.GET("", ledgerHandler.GetEntries)
	ledger.GET("/stats/monthly", ledgerHandler.GetMonthlyStats)
	ledger.GET("/logs", ledgerHandler.GetLogs)
	ledger.GET("/categories", ledgerHandler.GetCategories)
	ledger.GET("/:id", ledgerHandler.GetEntryByID)
	ledger.PUT("/:id", ledgerHandler.UpdateEntry)
	ledger.DELETE("/:id", ledgerHandler.DeleteEntry)

	log.Infof("Starting Hearthbook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
