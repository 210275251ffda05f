package routes

import (
	"time"

	"mentorship/handlers"
	"mentorship/middleware"
	"mentorship/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMentorRoutes registers mentor profile and availability endpoints.
func RegisterMentorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mentors")
	{
		// Public browsing
		api.GET("", hb.ListMentorsHandler)
		api.GET("/:id", hb.GetMentorHandler)
		api.GET("/:id/availability", hb.GetAvailabilityHandler)

		// A mentor edits only their own schedule; the service checks ownership.
		api.PUT("/:id/availability",
			middleware.JWTAuthMiddleware(),
			middleware.RequireRole(utils.RoleMentor),
			hb.UpdateAvailabilityHandler,
		)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.POST("/validate", hb.ValidateBookingHandler)

		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("", middleware.RequireRole(utils.RoleMentee), hb.CreateBookingHandler)
		bookingGroup.DELETE("/:id", hb.CancelBookingHandler)
	}

	r.GET("/api/sessions", middleware.JWTAuthMiddleware(), hb.ListSessionsHandler)
}

// RegisterDeviceRoutes registers push token endpoints.
func RegisterDeviceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/devices")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.PUT("/fcm", hb.UpdateFCMTokenHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMentorRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterDeviceRoutes(r, hb)
}
