package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jewelsoft/estima-api/internal/config"
	domainRepo "github.com/jewelsoft/estima-api/internal/domain/repository"
	"github.com/jewelsoft/estima-api/internal/presentation/http/handler"
	"github.com/jewelsoft/estima-api/internal/presentation/http/middleware"
	"github.com/jewelsoft/estima-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Rate       *handler.RateHandler
	Entry      *handler.EntryHandler
	Estimation *handler.EstimationHandler
	Printer    *handler.PrinterHandler
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
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
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

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Board rates
	protected.GET("/rates", h.Rate.GetRates)
	protected.POST("/rates/refresh", h.Rate.RefreshRates)

	// Sales grid entries
	protected.GET("/items", h.Entry.ListItems)
	protected.POST("/scan", h.Entry.Scan)
	entries := protected.Group("/entries")
	{
		entries.GET("", h.Entry.List)
		entries.POST("", h.Entry.Create)
		entries.POST("/remove", h.Entry.Remove)
		entries.DELETE("", h.Entry.Clear)
	}

	// Estimations
	estimations := protected.Group("/estimations")
	{
		estimations.GET("", h.Estimation.List)
		// Submission uses idempotency middleware to prevent duplicates
		estimations.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Estimation.Submit)
		estimations.GET("/:batch_no/slip", h.Estimation.GetSlip)
		estimations.POST("/:batch_no/print", h.Estimation.Print)
	}

	// Printer
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
