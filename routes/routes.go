package routes

import (
	"net/http"
	"time"

	"telecare/handlers"
	"telecare/middleware"
	"telecare/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.UserHandler.RegisterHandler)
		api.POST("/login", hb.UserHandler.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.UserHandler.MeHandler)
		api.GET("/doctors", hb.UserHandler.ListDoctorsHandler)
		api.PUT("/fcm-token", hb.UserHandler.UpdateFCMTokenHandler)
		api.POST("/logout", hb.UserHandler.LogoutHandler)
	}
}

// RegisterAvailabilityRoutes registers the provider schedule endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/:providerId", hb.AvailabilityHandler.GetAvailabilityHandler)

		// Only doctors may edit their own schedule.
		api.PUT("", middleware.RequireRole(models.RoleDoctor), hb.AvailabilityHandler.SetAvailabilityHandler)
	}
}

// RegisterAppointmentRoutes sets up slot listing and the booking lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/slots/:providerId", hb.AppointmentHandler.GetSlotsHandler)
		api.POST("/reserve", middleware.RequireRole(models.RolePatient), hb.AppointmentHandler.ReserveHandler)
		api.GET("/mine", hb.AppointmentHandler.ListMineHandler)
		api.PUT("/:id/:action", hb.AppointmentHandler.UpdateStatusHandler)
	}
}

// RegisterDocumentRoutes registers medical document endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/documents")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/upload", middleware.RequireRole(models.RolePatient), hb.DocumentHandler.UploadHandler)
		api.GET("", hb.DocumentHandler.ListHandler)
		api.POST("/:id/analyze", hb.DocumentHandler.AnalyzeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Telecare"})
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

	RegisterUserRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterHealthRoute(r)
}
