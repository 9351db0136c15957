package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"luggagelite/handlers"
	"luggagelite/middleware"
)

// RegisterPricingRoutes registers the public quote endpoints.
func RegisterPricingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pricing")
	{
		api.GET("/quote", hb.Pricing.QuoteHandler)
		api.GET("/distance", hb.Pricing.RouteDistanceHandler)
		api.POST("/calculate", hb.Pricing.CalculateHandler)
	}
}

// RegisterStationRoutes registers station reference data endpoints.
func RegisterStationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stations")
	{
		api.GET("", hb.Stations.ListStationsHandler)
		api.GET("/search", hb.Stations.SearchStationsHandler)
		api.GET("/:stationID", hb.Stations.GetStationHandler)
	}
}

// RegisterBookingRoutes registers the customer-facing booking lifecycle.
// Tracking lookups stay public so recipients can follow a shared link.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/bookings/:bookingID/tracking", hb.Booking.GetTrackingHandler)

	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Booking.CreateBookingHandler)
		api.GET("", hb.Booking.ListUserBookingsHandler)
		api.GET("/:bookingID", hb.Booking.GetBookingHandler)
		api.POST("/:bookingID/payment", hb.Booking.CompletePaymentHandler)
		api.POST("/:bookingID/cancel", hb.Booking.CancelBookingHandler)
	}
}

// RegisterStaffRoutes registers counter staff endpoints.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.POST("/login", hb.StaffAuth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthStaffMiddleware(hb.StaffRepo))
		api.POST("/bookings/:bookingID/status", hb.Booking.UpdateStatusHandler)
		api.POST("/bookings/:bookingID/cancel", hb.Booking.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPricingRoutes(r, hb)
	RegisterStationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterHealthRoute(r)
}
