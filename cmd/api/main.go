package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/application/service"
	"github.com/jewelsoft/estima-api/internal/config"
	"github.com/jewelsoft/estima-api/internal/infrastructure/database"
	erpclient "github.com/jewelsoft/estima-api/internal/infrastructure/erp"
	"github.com/jewelsoft/estima-api/internal/infrastructure/repository"
	"github.com/jewelsoft/estima-api/internal/presentation/http/handler"
	"github.com/jewelsoft/estima-api/internal/presentation/http/routes"
	"github.com/jewelsoft/estima-api/pkg/oauth"
	"github.com/jewelsoft/estima-api/pkg/printer"
	"github.com/jewelsoft/estima-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	estimationRepo := repository.NewEstimationRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize the billing backend client
	erpClient := erpclient.NewClient(cfg.ERP)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
		cfg.Printer.DialTimeout,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	pendingStore := service.NewPendingStore()
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	rateService := service.NewRateService(erpClient, cfg.Rates.PollInterval)
	entryService := service.NewEntryService(erpClient, pendingStore)
	submissionService := service.NewSubmissionService(
		erpClient,
		pendingStore,
		estimationRepo,
		cfg.ERP.CostID,
		cfg.ERP.CompanyID,
		cfg.ERP.TaxCompanyID,
	)
	receiptService := service.NewReceiptService(
		erpClient,
		thermalPrinter,
		estimationRepo,
		cfg.ERP.CompanyID,
		cfg.Printer.Width,
	)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width)

	// Start the board-rate poller
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rateService.Start(ctx)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Rate:       handler.NewRateHandler(rateService),
		Entry:      handler.NewEntryHandler(entryService),
		Estimation: handler.NewEstimationHandler(submissionService, receiptService),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
