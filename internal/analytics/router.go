package analytics

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller) {
	stats := router.Group("/admin/stats")
	stats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		stats.GET("/overview", controller.GetOverviewStats)           // GET /api/v1/admin/stats/overview
		stats.GET("/events/top", controller.GetTopEvents)             // GET /api/v1/admin/stats/events/top
		stats.GET("/events/:id", controller.GetEventStats)            // GET /api/v1/admin/stats/events/:id
		stats.GET("/bookings/daily", controller.GetDailyBookingStats) // GET /api/v1/admin/stats/bookings/daily
	}
}
