package booking

import (
	"context"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	spotRepo "smartpark/database/repository/spot"
	userRepo "smartpark/database/repository/user"
	"smartpark/models"
	"smartpark/services/notification"
	"smartpark/services/tasks"
)

// BookingEngine is the booking allocation engine: it decides whether a
// requested window on a spot can be granted, prices it, and manages the
// confirmed/cancelled lifecycle with refund semantics. Caller identity is
// always an explicit parameter.
type BookingEngine interface {
	Create(ctx context.Context, userID, spotID string, start, end time.Time, paymentMethod string) (*models.BookingResponse, error)
	GetByID(ctx context.Context, bookingID, userID string) (*models.BookingResponse, error)
	ListForUser(ctx context.Context, userID string) ([]models.BookingResponse, error)
	ListForOwner(ctx context.Context, ownerID string) ([]models.BookingResponse, error)
	AvailableCapacity(ctx context.Context, spotID string, start, end time.Time) (int, error)
	Cancel(ctx context.Context, bookingID, userID string) error
}

// DefaultBookingEngine implements BookingEngine.
type DefaultBookingEngine struct {
	Repo     bookingRepo.BookingRepository
	SpotRepo spotRepo.SpotRepository
	UserRepo userRepo.UserRepository
	Pricing  RatePolicy
	Notifier notification.NotificationService
	Reminder *tasks.ReminderScheduler

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultBookingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultBookingEngine) policy() RatePolicy {
	if e.Pricing != nil {
		return e.Pricing
	}
	return FlatRatePolicy{}
}
