package booking

import (
	"context"
	"fmt"
	"time"
)

// AvailableCapacity returns how many more bookings the spot can take over
// [start, end): capacity minus the number of CONFIRMED bookings overlapping
// the window, clamped at zero in case capacity shrank below commitments.
// Read-only; the authoritative check on the create path re-counts inside the
// store transaction.
func (e *DefaultBookingEngine) AvailableCapacity(ctx context.Context, spotID string, start, end time.Time) (int, error) {
	if !ValidWindow(start, end) {
		return 0, ErrInvalidWindow
	}

	spot, err := e.SpotRepo.GetByID(ctx, spotID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch spot %s: %w", spotID, err)
	}
	if spot == nil {
		return 0, ErrNotFound
	}

	booked, err := e.Repo.CountOverlapping(ctx, spotID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	available := spot.TotalCapacity - int(booked)
	if available < 0 {
		available = 0
	}
	return available, nil
}
