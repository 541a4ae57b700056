package user

import (
	"context"

	userRepo "smartpark/database/repository/user"
	"smartpark/models"
)

// UserService manages accounts, sessions and password recovery.
type UserService interface {
	Register(ctx context.Context, name, email, password, phone string) (*models.User, error)
	Login(ctx context.Context, email, password string) (token string, user *models.User, err error)
	LoginWithGoogle(ctx context.Context, idToken string) (token string, user *models.User, err error)
	Logout(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, phone string) (*models.User, error)
	RegisterFCMToken(ctx context.Context, id, fcmToken string) error
	InitiatePasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
