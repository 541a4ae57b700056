// File: handlers/spot.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"
	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchSpotsHandler lists active spots matching the optional state,
// district and name filters.
func SearchSpotsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := spotRepo.SpotQuery{
			State:    c.Query("state"),
			District: c.Query("district"),
			Name:     c.Query("name"),
		}
		spots, err := h.Spots.Search(c.Request.Context(), q)
		if err != nil {
			utils.GetLogger().Error("spot search failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, spots)
	}
}

// GetSpotHandler returns a single spot by id.
func GetSpotHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		sp, err := h.Spots.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
			return
		}
		c.JSON(http.StatusOK, sp)
	}
}

// AddSpotHandler creates a parking spot owned by the calling provider.
func AddSpotHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")

		var req models.ParkingSpot
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if req.Name == "" || req.TotalCapacity <= 0 || req.PricePerHour < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, a positive totalCapacity and a non-negative pricePerHour are required"})
			return
		}

		sp, err := h.Spots.Add(c.Request.Context(), ownerID, &req)
		if err != nil {
			if strings.Contains(err.Error(), "no provider profile") {
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
				return
			}
			utils.GetLogger().Error("spot creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusCreated, sp)
	}
}

// UpdateSpotHandler updates a spot owned by the caller.
func UpdateSpotHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")

		var req models.ParkingSpot
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		req.ID = c.Param("id")

		sp, err := h.Spots.Update(c.Request.Context(), ownerID, &req)
		if err != nil {
			respondSpotOwnershipError(c, err)
			return
		}
		c.JSON(http.StatusOK, sp)
	}
}

// DeleteSpotHandler removes a spot owned by the caller.
func DeleteSpotHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")
		if err := h.Spots.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
			respondSpotOwnershipError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Parking spot deleted"})
	}
}

// ListMySpotsHandler lists spots owned by the calling provider.
func ListMySpotsHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")
		spots, err := h.Spots.ListMine(c.Request.Context(), ownerID)
		if err != nil {
			utils.GetLogger().Error("listing owner spots failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, spots)
	}
}

// SetSpotStatusHandler switches a spot between ACTIVE, MAINTENANCE and
// BLOCKED.
func SetSpotStatusHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := h.Spots.SetStatus(c.Request.Context(), ownerID, c.Param("id"), req.Status); err != nil {
			if strings.Contains(err.Error(), "invalid spot status") {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			respondSpotOwnershipError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	}
}

// UploadSpotImageHandler accepts a multipart image and attaches its hosted
// URL to the spot.
func UploadSpotImageHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetString("userID")

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
			return
		}

		tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tmpPath); err != nil {
			utils.GetLogger().Error("saving upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		defer os.Remove(tmpPath)

		url, err := h.Spots.AttachImage(c.Request.Context(), ownerID, c.Param("id"), tmpPath)
		if err != nil {
			respondSpotOwnershipError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"imageUrl": url})
	}
}

func respondSpotOwnershipError(c *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
		return
	}
	utils.GetLogger().Error("spot operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
