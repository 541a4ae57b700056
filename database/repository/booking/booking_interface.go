package bookingRepo

import (
	"context"
	"errors"
	"time"

	"smartpark/models"
)

// Store-level failures the booking engine distinguishes from plain storage
// errors. Business rules live in services/booking; these only surface the
// outcome of the transactional operations below.
var (
	// ErrCapacityExceeded is returned by CreateConfirmed when the in-transaction
	// overlap count reaches the spot's capacity.
	ErrCapacityExceeded = errors.New("spot capacity exceeded for requested window")
	// ErrSpotNotFound is returned by CreateConfirmed when the spot row is absent.
	ErrSpotNotFound = errors.New("parking spot not found")
	// ErrNotConfirmed is returned by CancelWithRefund when the booking is no
	// longer in CONFIRMED state (lost race with another cancel).
	ErrNotConfirmed = errors.New("booking is not in confirmed state")
)

// BookingRepository is the persistent record of bookings and their payments.
//
// CreateConfirmed and CancelWithRefund are explicitly transactional: the
// capacity check and insert are serialized per spot against concurrent
// creates, and a cancel's two writes commit or roll back as one unit.
type BookingRepository interface {
	// CountOverlapping counts CONFIRMED bookings on spotID whose stored
	// window overlaps [start, end). Windows that only touch at an endpoint
	// do not overlap.
	CountOverlapping(ctx context.Context, spotID string, start, end time.Time) (int64, error)

	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// FindByOwner returns bookings across all spots owned by ownerID.
	FindByOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error

	FindPaymentByBooking(ctx context.Context, bookingID string) (*models.Payment, error)

	// CreateConfirmed atomically re-checks capacity and inserts the booking
	// (plus its payment record, when non-nil) in one transaction. Returns
	// ErrCapacityExceeded or ErrSpotNotFound without inserting anything.
	CreateConfirmed(ctx context.Context, booking *models.Booking, payment *models.Payment, capacity int) error

	// CancelWithRefund sets the booking to CANCELLED and flips a SUCCESS
	// payment to REFUNDED in one transaction. Returns ErrNotConfirmed when
	// the booking was not CONFIRMED at commit time.
	CancelWithRefund(ctx context.Context, bookingID string) error

	// Reporting.
	AggregateRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
