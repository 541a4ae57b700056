package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "smartpark/database/repository/booking"
	"smartpark/models"
	"smartpark/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cancellationLead is the minimum time before start at which a booking may
// still be cancelled: cancellation is allowed only while more than 48 hours
// remain.
const cancellationLead = 48 * time.Hour

// Create grants the requested window on the spot, or fails with
// ErrInvalidWindow, ErrNotFound or ErrCapacityExceeded. The capacity check
// and the insert run atomically in the store; when a payment method is
// supplied the payment record commits in the same transaction.
func (e *DefaultBookingEngine) Create(ctx context.Context, userID, spotID string, start, end time.Time, paymentMethod string) (*models.BookingResponse, error) {
	if !ValidWindow(start, end) {
		return nil, ErrInvalidWindow
	}

	user, err := e.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	spot, err := e.SpotRepo.GetByID(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spot %s: %w", spotID, err)
	}
	if spot == nil || spot.Status != models.SpotStatusActive {
		return nil, ErrNotFound
	}

	totalPrice, err := Quote(e.policy(), spot, start, end)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		SpotID:     spotID,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: totalPrice,
		Status:     models.BookingStatusConfirmed,
		CreatedAt:  e.now(),
	}

	var payment *models.Payment
	if paymentMethod != "" {
		payment = &models.Payment{
			ID:            uuid.New().String(),
			BookingID:     booking.ID,
			Amount:        totalPrice,
			Method:        paymentMethod,
			Status:        models.PaymentStatusSuccess,
			TransactionID: "TXN_" + uuid.New().String(),
			PaymentTime:   e.now(),
		}
	}

	if err := e.Repo.CreateConfirmed(ctx, booking, payment, spot.TotalCapacity); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, bookingRepo.ErrSpotNotFound):
			return nil, ErrNotFound
		default:
			return nil, fmt.Errorf("booking transaction failed: %w", err)
		}
	}

	e.afterCreate(ctx, booking, spot.Name)

	return buildResponse(booking, spot.Name, payment, user), nil
}

// afterCreate runs the post-commit side effects: confirmation notification
// and reminder scheduling. Failures are logged, never surfaced — the booking
// is already committed.
func (e *DefaultBookingEngine) afterCreate(ctx context.Context, booking *models.Booking, spotName string) {
	logger := utils.GetLogger()

	if e.Notifier != nil {
		msg := fmt.Sprintf("Your booking at %s from %s is confirmed.",
			spotName, booking.StartTime.Format(models.TimeLayout))
		if err := e.Notifier.Notify(ctx, booking.UserID, "Booking confirmed", msg, "success"); err != nil {
			logger.Warn("booking confirmation notification failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if e.Reminder != nil {
		if err := e.Reminder.ScheduleBookingReminder(booking, spotName); err != nil {
			logger.Warn("failed to schedule booking reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
}

// GetByID returns the caller's booking. Absent and not-owned collapse into
// the same ErrNotFound so existence never leaks.
func (e *DefaultBookingEngine) GetByID(ctx context.Context, bookingID, userID string) (*models.BookingResponse, error) {
	booking, err := e.Repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, ErrNotFound
	}
	return e.toResponse(ctx, booking)
}

// ListForUser returns the user's bookings, most recent first.
func (e *DefaultBookingEngine) ListForUser(ctx context.Context, userID string) ([]models.BookingResponse, error) {
	bookings, err := e.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	return e.toResponses(ctx, bookings)
}

// ListForOwner returns bookings across every spot owned by ownerID.
func (e *DefaultBookingEngine) ListForOwner(ctx context.Context, ownerID string) ([]models.BookingResponse, error) {
	bookings, err := e.Repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for owner %s: %w", ownerID, err)
	}
	return e.toResponses(ctx, bookings)
}

// Cancel transitions the caller's CONFIRMED booking to CANCELLED and refunds
// its SUCCESS payment, both in one store transaction. Cancellation must
// happen more than 48 hours before the booking starts.
func (e *DefaultBookingEngine) Cancel(ctx context.Context, bookingID, userID string) error {
	booking, err := e.Repo.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return ErrNotFound
	}
	if booking.UserID != userID {
		return ErrUnauthorized
	}

	switch booking.Status {
	case models.BookingStatusCancelled:
		return ErrAlreadyCancelled
	case models.BookingStatusCompleted:
		return ErrCancellationWindowClosed
	}

	if booking.StartTime.Sub(e.now()) <= cancellationLead {
		return ErrCancellationWindowClosed
	}

	if err := e.Repo.CancelWithRefund(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotConfirmed) {
			// Lost a race with another cancel.
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}

	if e.Notifier != nil {
		msg := fmt.Sprintf("Your booking starting %s has been cancelled. Any payment has been refunded.",
			booking.StartTime.Format(models.TimeLayout))
		if err := e.Notifier.Notify(ctx, userID, "Booking cancelled", msg, "info"); err != nil {
			utils.GetLogger().Warn("booking cancellation notification failed",
				zap.String("bookingID", bookingID), zap.Error(err))
		}
	}
	return nil
}
