package booking

import (
	"math"
	"time"

	"smartpark/models"
)

// RatePolicy selects the hourly rate to bill a window against a spot's rate
// card. Policies must be pure.
type RatePolicy interface {
	Rate(spot *models.ParkingSpot, start, end time.Time) float64
}

// FlatRatePolicy always bills PricePerHour.
type FlatRatePolicy struct{}

func (FlatRatePolicy) Rate(spot *models.ParkingSpot, start, end time.Time) float64 {
	return spot.PricePerHour
}

// WeekendRatePolicy substitutes the spot's weekend rate for windows starting
// on a Saturday or Sunday. A zero WeekendPricing means "use PricePerHour".
type WeekendRatePolicy struct{}

func (WeekendRatePolicy) Rate(spot *models.ParkingSpot, start, end time.Time) float64 {
	if spot.WeekendPricing > 0 {
		switch start.Weekday() {
		case time.Saturday, time.Sunday:
			return spot.WeekendPricing
		}
	}
	return spot.PricePerHour
}

// BilledHours rounds the window's duration up to whole hours, with a floor of
// one hour: a 10-minute booking bills as 1 hour, 150 minutes as 3.
func BilledHours(start, end time.Time) int {
	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return hours
}

// Quote computes the total price for booking the window on the spot under
// the given rate policy. Never negative; ErrInvalidWindow if end <= start.
func Quote(policy RatePolicy, spot *models.ParkingSpot, start, end time.Time) (float64, error) {
	if !ValidWindow(start, end) {
		return 0, ErrInvalidWindow
	}
	rate := policy.Rate(spot, start, end)
	if rate < 0 {
		rate = 0
	}
	return float64(BilledHours(start, end)) * rate, nil
}
