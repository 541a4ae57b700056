package routes

import (
	"net/http"
	"time"

	"smartpark/handlers"
	"smartpark/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and session endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", handlers.RegisterHandler(hb))
		api.POST("/login", handlers.LoginHandler(hb))
		api.POST("/login/google", handlers.GoogleLoginHandler(hb))
		api.POST("/forgot-password", handlers.ForgotPasswordHandler(hb))
		api.POST("/reset-password", handlers.ResetPasswordHandler(hb))

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", handlers.LogoutHandler(hb))
		api.GET("/me", handlers.GetProfileHandler(hb))
		api.PUT("/me", handlers.UpdateProfileHandler(hb))
		api.POST("/fcm-token", handlers.RegisterFCMTokenHandler(hb))
	}
}

// RegisterProviderRoutes registers provider application endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/apply", handlers.ApplyProviderHandler(hb))
		api.GET("/applications", handlers.MyApplicationsHandler(hb))
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", handlers.ListNotificationsHandler(hb))
		api.PUT("/:id/read", handlers.MarkNotificationReadHandler(hb))
		api.PUT("/read-all", handlers.MarkAllNotificationsReadHandler(hb))
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireAdmin())
		adminGroup.GET("/dashboard", handlers.AdminDashboardHandler(hb))
		adminGroup.GET("/applications", handlers.PendingApplicationsHandler(hb))
		adminGroup.PUT("/applications/:id", handlers.ReviewApplicationHandler(hb))
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SmartPark"})
	})
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

	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
