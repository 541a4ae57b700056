package routes

import (
	"smartpark/handlers"
	"smartpark/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers spot browsing and spot management.
// Search and detail are public; everything that mutates requires auth.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/spots")
	{
		api.GET("", handlers.SearchSpotsHandler(hb))
		api.GET("/:id", handlers.GetSpotHandler(hb))
		api.GET("/:id/availability", handlers.AvailabilityHandler(hb))

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.POST("", handlers.AddSpotHandler(hb))
		protected.PUT("/:id", handlers.UpdateSpotHandler(hb))
		protected.DELETE("/:id", handlers.DeleteSpotHandler(hb))
		protected.PUT("/:id/status", handlers.SetSpotStatusHandler(hb))
		protected.POST("/:id/images", handlers.UploadSpotImageHandler(hb))
	}

	mine := r.Group("/api/my-spots")
	{
		mine.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		mine.GET("", handlers.ListMySpotsHandler(hb))
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		bookingGroup.POST("", handlers.CreateBookingHandler(hb))
		bookingGroup.GET("", handlers.ListMyBookingsHandler(hb))
		bookingGroup.GET("/owner", handlers.ListOwnerBookingsHandler(hb))
		bookingGroup.GET("/:id", handlers.GetBookingHandler(hb))
		bookingGroup.DELETE("/:id", handlers.CancelBookingHandler(hb))
	}
}
