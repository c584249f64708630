package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reservo/handlers"
	"reservo/middleware"
)

// RegisterRoutes wires every endpoint onto the gin engine.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, resourceHandler *handlers.ResourceHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	registerResourceRoutes(r, bookingHandler, resourceHandler)
	registerBookingRoutes(r, bookingHandler)
}

func registerResourceRoutes(r *gin.Engine, bh *handlers.BookingHandler, rh *handlers.ResourceHandler) {
	api := r.Group("/api/resources")
	{
		// Public browse endpoints.
		api.GET("/:id", rh.GetResource)
		api.GET("/:id/occurrences", bh.ListResourceOccurrences)

		// Listing management requires authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("", rh.RegisterResource)
		protected.GET("", rh.ListMyResources)
		protected.PATCH("/:id", rh.UpdateResource)
		protected.DELETE("/:id", rh.DeleteResource)
	}
}

func registerBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/availability", bh.CheckAvailability)         // Phase 1: quote
		api.POST("/confirm/:sessionID", bh.ConfirmBooking)      // Phase 2: confirm quote
		api.POST("", bh.CreateBooking)                          // Direct booking
		api.GET("", bh.ListMyBookings)
		api.GET("/:id", bh.GetBooking)
		api.DELETE("/:id", bh.CancelBooking)
	}
}
