// File: handlers/notification.go
package handlers

import (
	"net/http"

	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler returns the caller's notifications, newest first.
func ListNotificationsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		items, err := h.NotificationRepo.FindByUser(c.Request.Context(), userID)
		if err != nil {
			utils.GetLogger().Error("listing notifications failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// MarkNotificationReadHandler marks one of the caller's notifications read.
func MarkNotificationReadHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if err := h.NotificationRepo.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
			utils.GetLogger().Error("marking notification read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
	}
}

// MarkAllNotificationsReadHandler marks every notification of the caller read.
func MarkAllNotificationsReadHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if err := h.NotificationRepo.MarkAllRead(c.Request.Context(), userID); err != nil {
			utils.GetLogger().Error("marking notifications read failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
	}
}
