package bookings

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Derived availability is public, it backs the event detail page
	router.GET("/events/:id/availability", controller.GetAvailability)

	// Authenticated booking routes
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		bookings.GET("/my-bookings", controller.GetMyBookings) // GET /api/v1/bookings/my-bookings
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.DELETE("/:id", controller.CancelBooking)      // DELETE /api/v1/bookings/:id (soft cancel)
	}

	// Admin routes - full ledger visibility
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings) // GET /api/v1/admin/bookings
	}
}
