package userRepo

import (
	"context"

	"smartpark/models"
)

// UserRepository is the account store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
	CountAll(ctx context.Context) (int64, error)
}
