package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// InitiatePasswordResetOTP generates an OTP, stores it in Redis with a
// 5-minute TTL, and returns it for delivery (SMS/email is handled outside
// this service; in development the code is logged).
func InitiatePasswordResetOTP(email string) (string, error) {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	ttl := 5 * time.Minute
	otpKey := fmt.Sprintf("otp:reset:%s", email)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := GetOTPCacheClient().Set(ctx, otpKey, otp, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store OTP: %w", err)
	}
	return otp, nil
}

// VerifyPasswordResetOTP checks the provided OTP against the stored value and
// consumes it on success.
func VerifyPasswordResetOTP(email, providedOTP string) error {
	otpKey := fmt.Sprintf("otp:reset:%s", email)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client := GetOTPCacheClient()

	stored, err := client.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		return fmt.Errorf("OTP expired or not found")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}
	if stored != providedOTP {
		return fmt.Errorf("invalid OTP")
	}
	_ = client.Del(ctx, otpKey).Err()
	return nil
}
