package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartpark/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, spots ...*models.ParkingSpot) (*DefaultBookingEngine, *fakeBookingRepo) {
	t.Helper()

	spotStore := newFakeSpotRepo(spots...)
	repo := newFakeBookingRepo(spotStore)
	users := newFakeUserRepo(
		&models.User{ID: "user-1", Name: "Asha", Email: "asha@example.com", PhoneNumber: "9999"},
		&models.User{ID: "user-2", Name: "Ravi", Email: "ravi@example.com"},
	)

	engine := &DefaultBookingEngine{
		Repo:     repo,
		SpotRepo: spotStore,
		UserRepo: users,
		Now:      func() time.Time { return time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local) },
	}
	return engine, repo
}

func activeSpot(id string, capacity int) *models.ParkingSpot {
	return &models.ParkingSpot{
		ID:            id,
		OwnerID:       "owner-1",
		Name:          "Central Garage",
		TotalCapacity: capacity,
		PricePerHour:  10,
		Status:        models.SpotStatusActive,
	}
}

func TestCreateBooking(t *testing.T) {
	engine, repo := newTestEngine(t, activeSpot("spot-1", 2))
	ctx := context.Background()

	resp, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(12), models.PaymentMethodUPI)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, 20.0, resp.TotalPrice)
	assert.Equal(t, "Central Garage", resp.SpotName)
	assert.Equal(t, models.PaymentMethodUPI, resp.PaymentMethod)
	assert.Equal(t, "Asha", resp.UserName)

	payment, err := repo.FindPaymentByBooking(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Contains(t, payment.TransactionID, "TXN_")
}

func TestCreateBookingWithoutPayment(t *testing.T) {
	engine, repo := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	resp, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(11), "")
	require.NoError(t, err)
	assert.Equal(t, "N/A", resp.PaymentMethod)

	payment, err := repo.FindPaymentByBooking(ctx, resp.ID)
	require.NoError(t, err)
	assert.Nil(t, payment)
}

func TestCreateBookingInvalidWindow(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))

	_, err := engine.Create(context.Background(), "user-1", "spot-1", at(12), at(10), "")
	assert.Equal(t, CodeInvalidWindow, ErrCode(err))
}

func TestCreateBookingUnknownSpotOrUser(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	_, err := engine.Create(ctx, "user-1", "no-such-spot", at(10), at(12), "")
	assert.Equal(t, CodeNotFound, ErrCode(err))

	_, err = engine.Create(ctx, "no-such-user", "spot-1", at(10), at(12), "")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestCreateBookingInactiveSpot(t *testing.T) {
	blocked := activeSpot("spot-1", 1)
	blocked.Status = models.SpotStatusBlocked
	engine, _ := newTestEngine(t, blocked)

	_, err := engine.Create(context.Background(), "user-1", "spot-1", at(10), at(12), "")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestCreateBookingCapacity(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	_, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(12), "")
	require.NoError(t, err)

	// Overlapping window on a full spot is rejected.
	_, err = engine.Create(ctx, "user-2", "spot-1", at(11), at(13), "")
	assert.Equal(t, CodeCapacityExceeded, ErrCode(err))

	// A window starting exactly at the previous end succeeds.
	_, err = engine.Create(ctx, "user-2", "spot-1", at(12), at(13), "")
	assert.NoError(t, err)
}

func TestCreateBookingConcurrent(t *testing.T) {
	const capacity = 3
	const contenders = 10

	engine, repo := newTestEngine(t, activeSpot("spot-1", capacity))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Create(ctx, "user-1", "spot-1", at(10), at(12), "")
		}(i)
	}
	wg.Wait()

	var granted, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			granted++
		case ErrCode(err) == CodeCapacityExceeded:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, granted, "grants must never exceed capacity")
	assert.Equal(t, contenders-capacity, rejected)

	count, err := repo.CountOverlapping(ctx, "spot-1", at(10), at(12))
	require.NoError(t, err)
	assert.Equal(t, int64(capacity), count)
}

func TestGetByID(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	created, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(12), models.PaymentMethodCard)
	require.NoError(t, err)

	got, err := engine.GetByID(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.PaymentMethodCard, got.PaymentMethod)

	// Another user's lookup and a missing id report the same outcome.
	_, err = engine.GetByID(ctx, created.ID, "user-2")
	assert.Equal(t, CodeNotFound, ErrCode(err))
	_, err = engine.GetByID(ctx, "missing", "user-1")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestListForUserAndOwner(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 2))
	ctx := context.Background()

	_, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(12), "")
	require.NoError(t, err)
	_, err = engine.Create(ctx, "user-2", "spot-1", at(10), at(12), "")
	require.NoError(t, err)

	mine, err := engine.ListForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	ownerView, err := engine.ListForOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, ownerView, 2)

	empty, err := engine.ListForOwner(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCancel(t *testing.T) {
	engine, repo := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	// Booking starts 72h after the engine's fixed clock.
	start := engine.now().Add(72 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(2*time.Hour), models.PaymentMethodUPI)
	require.NoError(t, err)

	require.NoError(t, engine.Cancel(ctx, created.ID, "user-1"))

	b, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, b.Status)

	payment, err := repo.FindPaymentByBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)

	// Cancelling again is rejected and the payment stays refunded once.
	err = engine.Cancel(ctx, created.ID, "user-1")
	assert.Equal(t, CodeAlreadyCancelled, ErrCode(err))
}

func TestCancelWindowClosed(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	// Starts 24h out: inside the 48h lead, cancellation refused.
	start := engine.now().Add(24 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(time.Hour), "")
	require.NoError(t, err)

	err = engine.Cancel(ctx, created.ID, "user-1")
	assert.Equal(t, CodeCancellationWindowClosed, ErrCode(err))

	// Starts exactly 48h out: still refused, the boundary is exclusive.
	boundary := engine.now().Add(48 * time.Hour)
	created2, err := engine.Create(ctx, "user-1", "spot-1", boundary, boundary.Add(time.Hour), "")
	require.NoError(t, err)

	err = engine.Cancel(ctx, created2.ID, "user-1")
	assert.Equal(t, CodeCancellationWindowClosed, ErrCode(err))
}

func TestCancelUnauthorized(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	start := engine.now().Add(72 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(time.Hour), "")
	require.NoError(t, err)

	err = engine.Cancel(ctx, created.ID, "user-2")
	assert.Equal(t, CodeUnauthorized, ErrCode(err))

	err = engine.Cancel(ctx, "missing", "user-1")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestCancelCompletedBooking(t *testing.T) {
	engine, repo := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	start := engine.now().Add(72 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(time.Hour), "")
	require.NoError(t, err)

	b, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	b.Status = models.BookingStatusCompleted
	require.NoError(t, repo.Save(ctx, b))

	err = engine.Cancel(ctx, created.ID, "user-1")
	assert.Equal(t, CodeCancellationWindowClosed, ErrCode(err))
}

func TestCancelledBookingFreesCapacity(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	start := engine.now().Add(72 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(2*time.Hour), "")
	require.NoError(t, err)

	_, err = engine.Create(ctx, "user-2", "spot-1", start, start.Add(2*time.Hour), "")
	assert.Equal(t, CodeCapacityExceeded, ErrCode(err))

	require.NoError(t, engine.Cancel(ctx, created.ID, "user-1"))

	_, err = engine.Create(ctx, "user-2", "spot-1", start, start.Add(2*time.Hour), "")
	assert.NoError(t, err)
}

func TestRevenueIncludesCancelledBookings(t *testing.T) {
	engine, repo := newTestEngine(t, activeSpot("spot-1", 2))
	ctx := context.Background()

	start := engine.now().Add(72 * time.Hour)
	first, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(2*time.Hour), "")
	require.NoError(t, err)
	second, err := engine.Create(ctx, "user-2", "spot-1", start, start.Add(2*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, 20.0, first.TotalPrice)
	assert.Equal(t, 20.0, second.TotalPrice)

	require.NoError(t, engine.Cancel(ctx, first.ID, "user-1"))

	total, err := repo.AggregateRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, total)
}
