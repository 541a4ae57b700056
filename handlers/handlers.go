// File: handlers/handlers.go
package handlers

import (
	bookingRepo "smartpark/database/repository/booking"
	notificationRepo "smartpark/database/repository/notification"
	providerRepo "smartpark/database/repository/provider"
	spotRepo "smartpark/database/repository/spot"
	userRepo "smartpark/database/repository/user"
	"smartpark/services/booking"
	"smartpark/services/notification"
	"smartpark/services/provider"
	"smartpark/services/spot"
	"smartpark/services/user"
)

// HandlerBundle aggregates the services the HTTP layer depends on so route
// registration receives a single value.
type HandlerBundle struct {
	Users         user.UserService
	Spots         spot.SpotService
	Bookings      booking.BookingEngine
	Providers     provider.ProviderService
	Notifications notification.NotificationService

	// Repositories consulted directly by the admin dashboard and
	// notification endpoints.
	BookingRepo      bookingRepo.BookingRepository
	SpotRepo         spotRepo.SpotRepository
	UserRepo         userRepo.UserRepository
	ProviderRepo     providerRepo.ProviderRepository
	NotificationRepo notificationRepo.NotificationRepository
}
