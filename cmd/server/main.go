package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jylee/minimart-backend/config"
	"github.com/jylee/minimart-backend/internal/app/controller"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/app/service"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/jylee/minimart-backend/internal/middleware"
	"github.com/jylee/minimart-backend/internal/router"
	"github.com/jylee/minimart-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Minimart Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	itemRepo := repository.NewItemRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	transactionRepo := repository.NewTransactionRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	catalogService := service.NewCatalogService(itemRepo)
	cartService := service.NewCartService(cartRepo, itemRepo)
	purchaseService := service.NewPurchaseService(
		transactionRepo,
		cartRepo,
		db.GetDB(),
		cfg.Catalog.InfiniteCapacityIDs,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	itemController := controller.NewItemController(catalogService)
	cartController := controller.NewCartController(cartService)
	purchaseController := controller.NewPurchaseController(purchaseService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		itemController,
		cartController,
		purchaseController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
