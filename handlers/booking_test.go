package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartpark/models"
	"smartpark/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine returns canned results so the handler's status mapping can be
// exercised without a store.
type stubEngine struct {
	createErr error
	cancelErr error
	available int
	availErr  error
}

func (s *stubEngine) Create(ctx context.Context, userID, spotID string, start, end time.Time, paymentMethod string) (*models.BookingResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.BookingResponse{ID: "b-1", SpotID: spotID, Status: models.BookingStatusConfirmed}, nil
}

func (s *stubEngine) GetByID(ctx context.Context, bookingID, userID string) (*models.BookingResponse, error) {
	return nil, booking.ErrNotFound
}

func (s *stubEngine) ListForUser(ctx context.Context, userID string) ([]models.BookingResponse, error) {
	return nil, nil
}

func (s *stubEngine) ListForOwner(ctx context.Context, ownerID string) ([]models.BookingResponse, error) {
	return nil, nil
}

func (s *stubEngine) AvailableCapacity(ctx context.Context, spotID string, start, end time.Time) (int, error) {
	return s.available, s.availErr
}

func (s *stubEngine) Cancel(ctx context.Context, bookingID, userID string) error {
	return s.cancelErr
}

func bookingRouter(engine booking.BookingEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hb := &HandlerBundle{Bookings: engine}

	r := gin.New()
	auth := func(c *gin.Context) { c.Set("userID", "user-1") }
	r.POST("/bookings", auth, CreateBookingHandler(hb))
	r.DELETE("/bookings/:id", auth, CancelBookingHandler(hb))
	r.GET("/spots/:id/availability", AvailabilityHandler(hb))
	return r
}

func postBooking(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"spotId":"spot-1","startTime":"2026-09-10 10:00:00","endTime":"2026-09-10 12:00:00","paymentMethod":"UPI"}`

func TestCreateBookingHandlerStatuses(t *testing.T) {
	tests := []struct {
		name       string
		engineErr  error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"capacity exceeded", booking.ErrCapacityExceeded, http.StatusConflict},
		{"spot missing", booking.ErrNotFound, http.StatusNotFound},
		{"invalid window", booking.ErrInvalidWindow, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bookingRouter(&stubEngine{createErr: tt.engineErr})
			w := postBooking(t, r, validBody)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateBookingHandlerRejectsBadInput(t *testing.T) {
	r := bookingRouter(&stubEngine{})

	w := postBooking(t, r, `{"spotId":"spot-1","startTime":"not-a-time","endTime":"2026-09-10 12:00:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postBooking(t, r, `{"spotId":"spot-1","startTime":"2026-09-10 10:00:00","endTime":"2026-09-10 12:00:00","paymentMethod":"BARTER"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postBooking(t, r, `{"startTime":"2026-09-10 10:00:00","endTime":"2026-09-10 12:00:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBookingHandlerStatuses(t *testing.T) {
	tests := []struct {
		name       string
		engineErr  error
		wantStatus int
	}{
		{"cancelled", nil, http.StatusOK},
		{"window closed", booking.ErrCancellationWindowClosed, http.StatusUnprocessableEntity},
		{"already cancelled", booking.ErrAlreadyCancelled, http.StatusConflict},
		{"not the owner", booking.ErrUnauthorized, http.StatusForbidden},
		{"missing", booking.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bookingRouter(&stubEngine{cancelErr: tt.engineErr})
			req := httptest.NewRequest(http.MethodDelete, "/bookings/b-1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAvailabilityHandler(t *testing.T) {
	r := bookingRouter(&stubEngine{available: 2})

	req := httptest.NewRequest(http.MethodGet,
		"/spots/spot-1/availability?startTime=2026-09-10+10:00:00&endTime=2026-09-10+12:00:00", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SpotID            string `json:"spotId"`
		AvailableCapacity int    `json:"availableCapacity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "spot-1", body.SpotID)
	assert.Equal(t, 2, body.AvailableCapacity)
}

func TestAvailabilityHandlerRejectsBadTimes(t *testing.T) {
	r := bookingRouter(&stubEngine{})

	req := httptest.NewRequest(http.MethodGet, "/spots/spot-1/availability?startTime=bogus", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
