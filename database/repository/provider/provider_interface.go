package providerRepo

import (
	"context"

	"smartpark/models"
)

// ProviderRepository stores verified providers and their pending applications.
type ProviderRepository interface {
	CreateProvider(ctx context.Context, provider *models.Provider) error
	GetProviderByUser(ctx context.Context, userID string) (*models.Provider, error)

	CreateApplication(ctx context.Context, app *models.ProviderApplication) error
	GetApplicationByID(ctx context.Context, id string) (*models.ProviderApplication, error)
	FindApplicationsByUser(ctx context.Context, userID string) ([]models.ProviderApplication, error)
	FindApplicationsByStatus(ctx context.Context, status string) ([]models.ProviderApplication, error)
	UpdateApplication(ctx context.Context, app *models.ProviderApplication) error
}
