// File: handlers/provider.go
package handlers

import (
	"net/http"
	"strings"

	"smartpark/models"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplyProviderHandler submits a provider application proposing a first
// parking spot.
func ApplyProviderHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req models.ProviderApplication
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		app, err := h.Providers.Apply(c.Request.Context(), userID, &req)
		if err != nil {
			if strings.Contains(err.Error(), "application requires") {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			utils.GetLogger().Error("provider application failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusCreated, app)
	}
}

// MyApplicationsHandler lists the caller's provider applications.
func MyApplicationsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		apps, err := h.Providers.MyApplications(c.Request.Context(), userID)
		if err != nil {
			utils.GetLogger().Error("listing applications failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}
