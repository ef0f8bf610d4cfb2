package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dukastore-api/internal/application/service"
	"github.com/sangkips/dukastore-api/internal/config"
	"github.com/sangkips/dukastore-api/internal/infrastructure/database"
	"github.com/sangkips/dukastore-api/internal/infrastructure/repository"
	"github.com/sangkips/dukastore-api/internal/presentation/http/handler"
	"github.com/sangkips/dukastore-api/internal/presentation/http/routes"
	"github.com/sangkips/dukastore-api/pkg/email"
	"github.com/sangkips/dukastore-api/pkg/invoicepdf"
	"github.com/sangkips/dukastore-api/pkg/notify"
	"github.com/sangkips/dukastore-api/pkg/utils"
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
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Prune expired idempotency keys periodically
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Failed to prune idempotency keys: %v", err)
			}
		}
	}()

	// Invoice PDF renderer
	pdfRenderer := invoicepdf.NewRenderer(invoicepdf.StoreInfo{
		Name:    cfg.Store.Name,
		Address: cfg.Store.Address,
		Phone:   cfg.Store.Phone,
	})

	// Optional delivery channels; a sale goes through even when neither is
	// configured
	var mailer service.InvoiceMailer
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
		})
	} else {
		log.Println("SMTP not configured, invoice emails disabled")
	}

	var notifier service.SaleNotifier
	if cfg.WhatsApp.AccountSID != "" {
		notifier = notify.NewWhatsAppNotifier(notify.WhatsAppConfig{
			AccountSID: cfg.WhatsApp.AccountSID,
			AuthToken:  cfg.WhatsApp.AuthToken,
			FromNumber: cfg.WhatsApp.FromNumber,
			ToNumber:   cfg.WhatsApp.ToNumber,
		})
	} else {
		log.Println("Twilio not configured, WhatsApp notifications disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, pdfRenderer, mailer, notifier)
	reportService := service.NewReportService(invoiceRepo, productRepo, pdfRenderer)
	importService := service.NewImportService(productService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService, importService),
		Sale:    handler.NewSaleHandler(saleService),
		Invoice: handler.NewInvoiceHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
