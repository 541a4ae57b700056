package user

import (
	"context"
	"fmt"

	"smartpark/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// InitiatePasswordReset generates an OTP and stores it in Redis. The response
// is identical whether or not the email exists, so account existence never
// leaks through this endpoint.
func (s *DefaultUserService) InitiatePasswordReset(ctx context.Context, email string) error {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to initiate password reset: %w", err)
	}
	if user == nil {
		return nil
	}

	otp, err := utils.InitiatePasswordResetOTP(email)
	if err != nil {
		return fmt.Errorf("failed to initiate password reset: %w", err)
	}

	// Delivery (SMS/email) is an external concern; log in development so the
	// flow can be exercised end to end.
	utils.GetLogger().Sugar().Infof("password reset OTP for %s: %s", email, otp)
	return nil
}

// ResetPassword verifies the OTP, replaces the password hash and revokes the
// current session.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}
	if err := utils.VerifyPasswordResetOTP(email, otp); err != nil {
		return err
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if user == nil {
		return fmt.Errorf("invalid OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	if err := s.Repo.UpdateTokenHash(ctx, user.ID, ""); err != nil {
		utils.GetLogger().Warn("ResetPassword: failed to revoke session", zap.Error(err))
	}
	return nil
}
