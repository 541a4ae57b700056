// File: handlers/user.go
package handlers

import (
	"net/http"
	"strings"

	"smartpark/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler creates a new user account.
func RegisterHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=8"`
			Phone    string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		usr, err := h.Users.Register(c.Request.Context(), req.Name, strings.ToLower(req.Email), req.Password, req.Phone)
		if err != nil {
			if strings.Contains(err.Error(), "already registered") {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			utils.GetLogger().Error("registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusCreated, usr)
	}
}

// LoginHandler authenticates a user and issues a session token.
func LoginHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		token, usr, err := h.Users.Login(c.Request.Context(), strings.ToLower(req.Email), req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": usr})
	}
}

// GoogleLoginHandler signs a user in with a Google ID token, creating the
// account on first sign-in.
func GoogleLoginHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		token, usr, err := h.Users.LoginWithGoogle(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": usr})
	}
}

// LogoutHandler revokes the caller's session.
func LogoutHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if err := h.Users.Logout(c.Request.Context(), userID); err != nil {
			utils.GetLogger().Error("logout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GetProfileHandler returns the caller's profile.
func GetProfileHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		usr, err := h.Users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, usr)
	}
}

// UpdateProfileHandler updates mutable profile fields.
func UpdateProfileHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		usr, err := h.Users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone)
		if err != nil {
			utils.GetLogger().Error("profile update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, usr)
	}
}

// RegisterFCMTokenHandler stores the caller's push notification token.
func RegisterFCMTokenHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := h.Users.RegisterFCMToken(c.Request.Context(), userID, req.FCMToken); err != nil {
			utils.GetLogger().Error("fcm token registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Token registered"})
	}
}

// ForgotPasswordHandler starts a password reset. The response is identical
// whether or not the email exists.
func ForgotPasswordHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := h.Users.InitiatePasswordReset(c.Request.Context(), strings.ToLower(req.Email)); err != nil {
			utils.GetLogger().Error("password reset initiation failed", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent"})
	}
}

// ResetPasswordHandler completes a password reset with a valid OTP.
func ResetPasswordHandler(h *HandlerBundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required,email"`
			OTP         string `json:"otp" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		if err := h.Users.ResetPassword(c.Request.Context(), strings.ToLower(req.Email), req.OTP, req.NewPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
