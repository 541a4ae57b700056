package user

import (
	"context"
	"fmt"

	"smartpark/models"
	"smartpark/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new USER account. Email must be unused.
func (s *DefaultUserService) Register(ctx context.Context, name, email, password, phone string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials, issues a JWT and primes the auth cache with its
// hash so the middleware can verify without a DB round trip.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login failed: %w", err)
	}
	if user == nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, utils.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(ctx, user.ID, tokenHash); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + user.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Login: failed to prime auth cache", zap.Error(err))
	}

	return token, user, nil
}

// Logout revokes the current session.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + userID
	if err := utils.GetAuthCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Logout: failed to clear auth cache", zap.Error(err))
	}
	return nil
}

// GetByID returns the account, or (nil, nil) when absent.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile changes the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, name, phone string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", id)
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterFCMToken stores the device token used for push notifications.
func (s *DefaultUserService) RegisterFCMToken(ctx context.Context, id, fcmToken string) error {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", id)
	}
	user.FCMToken = fcmToken
	return s.Repo.Update(ctx, user)
}
