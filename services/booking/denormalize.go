package booking

import (
	"context"
	"fmt"

	"smartpark/models"
)

// buildResponse assembles the client view of a booking from fully
// materialized records. Payment method and phone fall back to "N/A".
func buildResponse(b *models.Booking, spotName string, payment *models.Payment, user *models.User) *models.BookingResponse {
	method := "N/A"
	if payment != nil {
		method = payment.Method
	}
	phone := user.PhoneNumber
	if phone == "" {
		phone = "N/A"
	}

	return &models.BookingResponse{
		ID:            b.ID,
		SpotID:        b.SpotID,
		SpotName:      spotName,
		StartTime:     b.StartTime.Format(models.TimeLayout),
		EndTime:       b.EndTime.Format(models.TimeLayout),
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentMethod: method,
		CreatedAt:     b.CreatedAt.Format(models.TimeLayout),
		UserName:      user.Name,
		UserEmail:     user.Email,
		UserPhone:     phone,
	}
}

// toResponse fetches the spot, payment and requester for one booking.
func (e *DefaultBookingEngine) toResponse(ctx context.Context, b *models.Booking) (*models.BookingResponse, error) {
	spotName := ""
	spot, err := e.SpotRepo.GetByID(ctx, b.SpotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spot %s: %w", b.SpotID, err)
	}
	if spot != nil {
		spotName = spot.Name
	}

	payment, err := e.Repo.FindPaymentByBooking(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment for booking %s: %w", b.ID, err)
	}

	user, err := e.UserRepo.GetByID(ctx, b.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", b.UserID, err)
	}
	if user == nil {
		user = &models.User{ID: b.UserID}
	}

	return buildResponse(b, spotName, payment, user), nil
}

// toResponses materializes a list of bookings, caching spot and user lookups
// across the batch.
func (e *DefaultBookingEngine) toResponses(ctx context.Context, bookings []models.Booking) ([]models.BookingResponse, error) {
	spotNames := make(map[string]string)
	users := make(map[string]*models.User)

	responses := make([]models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]

		name, ok := spotNames[b.SpotID]
		if !ok {
			spot, err := e.SpotRepo.GetByID(ctx, b.SpotID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch spot %s: %w", b.SpotID, err)
			}
			if spot != nil {
				name = spot.Name
			}
			spotNames[b.SpotID] = name
		}

		user, ok := users[b.UserID]
		if !ok {
			u, err := e.UserRepo.GetByID(ctx, b.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch user %s: %w", b.UserID, err)
			}
			if u == nil {
				u = &models.User{ID: b.UserID}
			}
			user = u
			users[b.UserID] = user
		}

		payment, err := e.Repo.FindPaymentByBooking(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch payment for booking %s: %w", b.ID, err)
		}

		responses = append(responses, *buildResponse(b, name, payment, user))
	}
	return responses, nil
}
