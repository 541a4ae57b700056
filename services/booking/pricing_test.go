package booking

import (
	"testing"
	"time"

	"smartpark/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBilledHours(t *testing.T) {
	start := at(10)

	assert.Equal(t, 1, BilledHours(start, start.Add(30*time.Minute)))
	assert.Equal(t, 1, BilledHours(start, start.Add(time.Hour)))
	assert.Equal(t, 2, BilledHours(start, start.Add(61*time.Minute)))
	assert.Equal(t, 3, BilledHours(start, start.Add(150*time.Minute)))
	assert.Equal(t, 24, BilledHours(start, start.Add(24*time.Hour)))
}

func TestQuoteFlatRate(t *testing.T) {
	spot := &models.ParkingSpot{PricePerHour: 10}

	price, err := Quote(FlatRatePolicy{}, spot, at(10), at(10).Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 10.0, price, "sub-hour bookings bill a full hour")

	price, err = Quote(FlatRatePolicy{}, spot, at(10), at(10).Add(150*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 30.0, price, "150 minutes bills as 3 hours")
}

func TestQuoteInvalidWindow(t *testing.T) {
	spot := &models.ParkingSpot{PricePerHour: 10}

	_, err := Quote(FlatRatePolicy{}, spot, at(12), at(10))
	assert.Equal(t, CodeInvalidWindow, ErrCode(err))

	_, err = Quote(FlatRatePolicy{}, spot, at(10), at(10))
	assert.Equal(t, CodeInvalidWindow, ErrCode(err))
}

func TestQuoteNegativeRateClampsToZero(t *testing.T) {
	spot := &models.ParkingSpot{PricePerHour: -5}

	price, err := Quote(FlatRatePolicy{}, spot, at(10), at(12))
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)
}

func TestWeekendRatePolicy(t *testing.T) {
	spot := &models.ParkingSpot{PricePerHour: 10, WeekendPricing: 15}

	saturday := time.Date(2026, time.September, 12, 10, 0, 0, 0, time.Local)
	weekday := time.Date(2026, time.September, 10, 10, 0, 0, 0, time.Local)

	assert.Equal(t, 15.0, WeekendRatePolicy{}.Rate(spot, saturday, saturday.Add(time.Hour)))
	assert.Equal(t, 10.0, WeekendRatePolicy{}.Rate(spot, weekday, weekday.Add(time.Hour)))

	// Zero weekend pricing falls back to the base rate.
	noWeekend := &models.ParkingSpot{PricePerHour: 10}
	assert.Equal(t, 10.0, WeekendRatePolicy{}.Rate(noWeekend, saturday, saturday.Add(time.Hour)))
}
