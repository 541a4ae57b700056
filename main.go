// File: smartpark/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartpark/config"
	"smartpark/cron"
	"smartpark/database"
	bookingRepoPkg "smartpark/database/repository/booking"
	notificationRepoPkg "smartpark/database/repository/notification"
	providerRepoPkg "smartpark/database/repository/provider"
	spotRepoPkg "smartpark/database/repository/spot"
	userRepoPkg "smartpark/database/repository/user"
	"smartpark/handlers"
	"smartpark/middleware"
	"smartpark/routes"
	"smartpark/services/booking"
	"smartpark/services/notification"
	"smartpark/services/provider"
	"smartpark/services/spot"
	"smartpark/services/tasks"
	"smartpark/services/user"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitOTPCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary unavailable, image uploads disabled: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	spotRepo := spotRepoPkg.NewMongoSpotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(notificationRepo, userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderScheduler := tasks.NewReminderScheduler()
	defer reminderScheduler.Close()

	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	spotService := &spot.DefaultSpotService{
		Repo:         spotRepo,
		ProviderRepo: providerRepo,
		Storage:      cloudinaryStorageService,
	}

	providerService := &provider.DefaultProviderService{
		Repo:     providerRepo,
		SpotRepo: spotRepo,
		UserRepo: userRepo,
		Notifier: notificationService,
	}

	bookingEngine := &booking.DefaultBookingEngine{
		Repo:     bookingRepo,
		SpotRepo: spotRepo,
		UserRepo: userRepo,
		Pricing:  booking.WeekendRatePolicy{},
		Notifier: notificationService,
		Reminder: reminderScheduler,
	}

	// Background reminder delivery.
	cron.InitReminderWorker(notificationService, bookingRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Users:         userService,
		Spots:         spotService,
		Bookings:      bookingEngine,
		Providers:     providerService,
		Notifications: notificationService,

		BookingRepo:      bookingRepo,
		SpotRepo:         spotRepo,
		UserRepo:         userRepo,
		ProviderRepo:     providerRepo,
		NotificationRepo: notificationRepo,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
