package routes

import (
	"net/http"
	"time"

	"pescalia/handlers"
	"pescalia/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterGuideRoutes registers guide profile and service listing endpoints.
func RegisterGuideRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/guides")
	{
		// Public endpoints. The service list endpoint takes an optional token:
		// owners and admins see pending listings, everyone else only approved
		// ones.
		api.GET("", hb.ListGuidesHandler)
		api.GET("/id/:id", hb.GetGuideHandler)
		api.GET("/id/:id/services", middleware.JWTAuthMiddleware(true), hb.ListGuideServicesHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(false))
		protected.POST("/register", hb.RegisterGuideHandler)
		protected.GET("/me", hb.CurrentGuideHandler)
		protected.PUT("/update/:id", hb.UpdateGuideHandler)
		protected.PUT("/id/:id/fcm-token", hb.UpdateFCMTokenHandler)
		protected.DELETE("/delete/:id", hb.DeleteGuideHandler)
		protected.POST("/id/:id/services", hb.CreateServiceHandler)
		protected.POST("/id/:id/services/approve-all", hb.ApproveAllForGuide)
		protected.GET("/id/:id/services/pending-count", hb.PendingCountHandler)
	}
}

// RegisterServiceRoutes registers per-service endpoints, including the
// approval transitions.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.Use(middleware.JWTAuthMiddleware(false))
		api.PUT("/:serviceID", hb.UpdateServiceHandler)
		api.DELETE("/:serviceID", hb.DeleteServiceHandler)
		api.POST("/:serviceID/approve", hb.ApproveServiceHandler)
		api.POST("/:serviceID/unpublish", hb.UnpublishServiceHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(false))
		bookingGroup.POST("/session", hb.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.GetSession)
		bookingGroup.PUT("/session/:sessionID/service", hb.SelectService)
		bookingGroup.PUT("/session/:sessionID/schedule", hb.SetSchedule)
		bookingGroup.PUT("/session/:sessionID/contact", hb.SetContact)
		bookingGroup.POST("/session/:sessionID/advance", hb.Advance)
		bookingGroup.POST("/session/:sessionID/back", hb.Back)
		bookingGroup.POST("/confirm", hb.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelSession)
		bookingGroup.GET("/mine", hb.MyBookings)
	}
}

// RegisterAdminRoutes sets up endpoints for moderation operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/guides", hb.AdminHandler.ListGuides)
		adminGroup.GET("/guides/:id/bookings", hb.AdminHandler.GuideBookings)
		adminGroup.GET("/services/pending", hb.AdminHandler.ListPendingServices)
		adminGroup.POST("/services/approve-all", hb.AdminHandler.ApproveAllPending)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Pescalia"})
	})
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

	RegisterGuideRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
