// File: handlers/admin.go
package handlers

import (
	"net/http"
	"strings"

	"smartpark/models"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminDashboardHandler returns platform-wide counters for the admin UI:
// user, spot and booking totals, a booking status breakdown, and lifetime
// revenue across all bookings.
func AdminDashboardHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		users, err := h.UserRepo.CountAll(ctx)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		spots, err := h.SpotRepo.CountAll(ctx)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		bookings, err := h.BookingRepo.CountAll(ctx)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		confirmed, err := h.BookingRepo.CountByStatus(ctx, models.BookingStatusConfirmed)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		cancelled, err := h.BookingRepo.CountByStatus(ctx, models.BookingStatusCancelled)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		revenue, err := h.BookingRepo.AggregateRevenue(ctx)
		if err != nil {
			respondAdminError(c, err)
			return
		}
		pending, err := h.Providers.PendingApplications(ctx)
		if err != nil {
			respondAdminError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalUsers":          users,
			"totalSpots":          spots,
			"totalBookings":       bookings,
			"confirmedBookings":   confirmed,
			"cancelledBookings":   cancelled,
			"totalRevenue":        revenue,
			"pendingApplications": len(pending),
		})
	}
}

// PendingApplicationsHandler lists provider applications awaiting review.
func PendingApplicationsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		apps, err := h.Providers.PendingApplications(c.Request.Context())
		if err != nil {
			respondAdminError(c, err)
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// ReviewApplicationHandler approves or rejects a provider application.
func ReviewApplicationHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Action  string `json:"action" binding:"required,oneof=approve reject"`
			Remarks string `json:"remarks"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action must be approve or reject"})
			return
		}

		appID := c.Param("id")
		var err error
		if req.Action == "approve" {
			err = h.Providers.Approve(c.Request.Context(), appID, req.Remarks)
		} else {
			err = h.Providers.Reject(c.Request.Context(), appID, req.Remarks)
		}
		if err != nil {
			switch {
			case strings.Contains(err.Error(), "not found"):
				c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			case strings.Contains(err.Error(), "already been decided"):
				c.JSON(http.StatusConflict, gin.H{"error": "Application has already been decided"})
			default:
				respondAdminError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Application " + req.Action + "d"})
	}
}

func respondAdminError(c *gin.Context, err error) {
	utils.GetLogger().Error("admin operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
