package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableCapacity(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 3))
	ctx := context.Background()

	free, err := engine.AvailableCapacity(ctx, "spot-1", at(10), at(12))
	require.NoError(t, err)
	assert.Equal(t, 3, free)

	_, err = engine.Create(ctx, "user-1", "spot-1", at(10), at(12), "")
	require.NoError(t, err)
	_, err = engine.Create(ctx, "user-2", "spot-1", at(11), at(13), "")
	require.NoError(t, err)

	free, err = engine.AvailableCapacity(ctx, "spot-1", at(11), at(12))
	require.NoError(t, err)
	assert.Equal(t, 1, free)

	// A window that only touches existing bookings sees full capacity.
	free, err = engine.AvailableCapacity(ctx, "spot-1", at(13), at(14))
	require.NoError(t, err)
	assert.Equal(t, 3, free)
}

func TestAvailableCapacityClampsAtZero(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	_, err := engine.Create(ctx, "user-1", "spot-1", at(10), at(12), "")
	require.NoError(t, err)

	// Capacity shrinks after a booking exists (spot now holds fewer slots
	// than confirmed bookings).
	sp, err := engine.SpotRepo.GetByID(ctx, "spot-1")
	require.NoError(t, err)
	sp.TotalCapacity = 0
	require.NoError(t, engine.SpotRepo.Update(ctx, sp))

	free, err := engine.AvailableCapacity(ctx, "spot-1", at(10), at(12))
	require.NoError(t, err)
	assert.Equal(t, 0, free, "availability never reports negative")
}

func TestAvailableCapacityErrors(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	_, err := engine.AvailableCapacity(ctx, "missing", at(10), at(12))
	assert.Equal(t, CodeNotFound, ErrCode(err))

	_, err = engine.AvailableCapacity(ctx, "spot-1", at(12), at(10))
	assert.Equal(t, CodeInvalidWindow, ErrCode(err))
}

func TestAvailabilityCountsOnlyConfirmed(t *testing.T) {
	engine, _ := newTestEngine(t, activeSpot("spot-1", 1))
	ctx := context.Background()

	start := engine.now().Add(72 * time.Hour)
	created, err := engine.Create(ctx, "user-1", "spot-1", start, start.Add(2*time.Hour), "")
	require.NoError(t, err)
	require.NoError(t, engine.Cancel(ctx, created.ID, "user-1"))

	free, err := engine.AvailableCapacity(ctx, "spot-1", start, start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, free)
}
