package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dukastore-api/internal/config"
	domainRepo "github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/internal/presentation/http/handler"
	"github.com/sangkips/dukastore-api/internal/presentation/http/middleware"
	"github.com/sangkips/dukastore-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Sale    *handler.SaleHandler
	Invoice *handler.InvoiceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Catalog
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/categories", h.Product.Categories)
		products.POST("/filter", h.Product.Filter)
		products.GET("/groups", h.Product.Groups)
		products.POST("/expand", h.Product.Expand)
		products.POST("/import", h.Product.Import)
		products.GET("/:code", h.Product.Get)
		products.PUT("/:code", h.Product.Update)
		products.DELETE("/:code", h.Product.Delete)
		products.POST("/:code/restock", h.Product.Restock)
	}

	// Sales; checkout guarded by the idempotency middleware so a retried
	// submit replays the original invoice instead of selling stock twice
	sales := protected.Group("/sales")
	{
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Record)
		sales.GET("", h.Sale.List)
	}

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/pdf", h.Invoice.PDF)
	}
}
