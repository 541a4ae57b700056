// File: handlers/booking.go
package handlers

import (
	"net/http"
	"time"

	"smartpark/models"
	"smartpark/services/booking"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bookingErrStatus maps booking error codes to HTTP statuses.
func bookingErrStatus(err error) int {
	switch booking.ErrCode(err) {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeInvalidWindow:
		return http.StatusBadRequest
	case booking.CodeCapacityExceeded, booking.CodeAlreadyCancelled:
		return http.StatusConflict
	case booking.CodeCancellationWindowClosed:
		return http.StatusUnprocessableEntity
	case booking.CodeUnauthorized:
		return http.StatusForbidden
	default:
		return 0
	}
}

func respondBookingError(c *gin.Context, err error) {
	if status := bookingErrStatus(err); status != 0 {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	utils.GetLogger().Error("booking operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// CreateBookingHandler reserves a time window on a parking spot for the
// authenticated user.
func CreateBookingHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req struct {
			SpotID        string `json:"spotId" binding:"required"`
			StartTime     string `json:"startTime" binding:"required"`
			EndTime       string `json:"endTime" binding:"required"`
			PaymentMethod string `json:"paymentMethod"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		start, err := time.ParseInLocation(models.TimeLayout, req.StartTime, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startTime must be formatted as " + models.TimeLayout})
			return
		}
		end, err := time.ParseInLocation(models.TimeLayout, req.EndTime, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be formatted as " + models.TimeLayout})
			return
		}
		if req.PaymentMethod != "" && !models.IsValidPaymentMethod(req.PaymentMethod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
			return
		}

		resp, err := h.Bookings.Create(c.Request.Context(), userID, req.SpotID, start, end, req.PaymentMethod)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// GetBookingHandler returns a single booking owned by the caller.
func GetBookingHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		resp, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListMyBookingsHandler returns the caller's bookings, newest first.
func ListMyBookingsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		resp, err := h.Bookings.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// ListOwnerBookingsHandler returns bookings across all spots owned by the
// calling provider.
func ListOwnerBookingsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")
		resp, err := h.Bookings.ListForOwner(c.Request.Context(), ownerID)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// AvailabilityHandler reports how many slots remain free on a spot for a
// requested window.
func AvailabilityHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		spotID := c.Param("id")
		start, err := time.ParseInLocation(models.TimeLayout, c.Query("startTime"), time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startTime must be formatted as " + models.TimeLayout})
			return
		}
		end, err := time.ParseInLocation(models.TimeLayout, c.Query("endTime"), time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be formatted as " + models.TimeLayout})
			return
		}

		available, err := h.Bookings.AvailableCapacity(c.Request.Context(), spotID, start, end)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"spotId": spotID, "availableCapacity": available})
	}
}

// CancelBookingHandler cancels a confirmed booking and refunds its payment.
func CancelBookingHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully. Payment refunded."})
	}
}
