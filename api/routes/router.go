// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"gatherly/internal/analytics"
	"gatherly/internal/auth"
	"gatherly/internal/bookings"
	"gatherly/internal/events"
	"gatherly/internal/shared/clock"
	"gatherly/internal/shared/config"
	"gatherly/internal/shared/database"
	"gatherly/internal/tags"
	"gatherly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	clock        clock.Clock
	cacheService cache.Service
	notifier     bookings.Notifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, clk clock.Clock) *Router {
	return &Router{
		config: cfg,
		db:     db,
		clock:  clk,
	}
}

// SetCacheService injects the Redis-backed read cache.
func (r *Router) SetCacheService(cacheService cache.Service) {
	r.cacheService = cacheService
}

// SetNotifier injects the booking message publisher.
func (r *Router) SetNotifier(notifier bookings.Notifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupTagRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gatherly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gatherly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupTagRoutes configures the tag browse surface
func (r *Router) setupTagRoutes(rg *gin.RouterGroup) {
	tagRepo := tags.NewRepository(r.db.GetPostgreSQL())
	tagService := tags.NewService(tagRepo)
	if r.cacheService != nil {
		tagService.SetCacheService(r.cacheService)
	}
	tagController := tags.NewController(tagService)

	tags.SetupTagRoutes(rg, tagController)
}

// setupEventRoutes configures event catalog routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.clock)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupBookingRoutes configures the booking ledger routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.clock)
	if r.cacheService != nil {
		bookingService.SetCacheInvalidator(r.cacheService)
	}
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupAnalyticsRoutes configures the admin stats routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	statsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	statsService := analytics.NewService(statsRepo)
	statsController := analytics.NewController(statsService)

	analytics.SetupAnalyticsRoutes(rg, statsController)
}
