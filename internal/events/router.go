package events

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.GetAllEvents)               // GET /api/v1/events
		publicEvents.GET("/upcoming", controller.GetUpcomingEvents) // GET /api/v1/events/upcoming
		publicEvents.GET("/past", controller.GetPastEvents)         // GET /api/v1/events/past
		publicEvents.GET("/:id", controller.GetEvent)               // GET /api/v1/events/:id
	}

	// Admin routes - only admins can create, update and retire events
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)       // POST /api/v1/admin/events
		adminEvents.PUT("/:id", controller.UpdateEvent)    // PUT /api/v1/admin/events/:id
		adminEvents.DELETE("/:id", controller.RetireEvent) // DELETE /api/v1/admin/events/:id (soft retire)

		// Admins can browse through the same handlers as the public surface
		adminEvents.GET("", controller.GetAllEvents)
		adminEvents.GET("/:id", controller.GetEvent)
	}
}
