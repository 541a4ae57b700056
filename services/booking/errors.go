package booking

import (
	"errors"
	"fmt"
)

// Error codes for expected, user-facing booking outcomes. The handler layer
// maps these to HTTP statuses; none of them are logged as faults.
const (
	CodeNotFound                 = "notFound"
	CodeInvalidWindow            = "invalidWindow"
	CodeCapacityExceeded         = "capacityExceeded"
	CodeCancellationWindowClosed = "cancellationWindowClosed"
	CodeAlreadyCancelled         = "alreadyCancelled"
	CodeUnauthorized             = "unauthorized"
)

// BookingError is an expected business outcome with a stable code.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrNotFound                 = &BookingError{CodeNotFound, "booking or resource not found"}
	ErrInvalidWindow            = &BookingError{CodeInvalidWindow, "end time must be after start time"}
	ErrCapacityExceeded         = &BookingError{CodeCapacityExceeded, "parking spot is fully booked for the selected time"}
	ErrCancellationWindowClosed = &BookingError{CodeCancellationWindowClosed, "cancellation is only allowed more than 48 hours before the booking start time"}
	ErrAlreadyCancelled         = &BookingError{CodeAlreadyCancelled, "booking is already cancelled"}
	ErrUnauthorized             = &BookingError{CodeUnauthorized, "you are not authorized to act on this booking"}
)

// ErrCode returns the booking error code carried by err, or "" when err is
// not a BookingError.
func ErrCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
