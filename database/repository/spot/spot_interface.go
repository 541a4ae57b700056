package spotRepo

import (
	"context"

	"smartpark/models"
)

// SpotQuery narrows catalog searches. Zero values are ignored.
type SpotQuery struct {
	State    string
	District string
	Name     string
	Status   string
}

// SpotRepository is the parking-spot catalog store.
type SpotRepository interface {
	Create(ctx context.Context, spot *models.ParkingSpot) error
	Update(ctx context.Context, spot *models.ParkingSpot) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.ParkingSpot, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.ParkingSpot, error)
	Search(ctx context.Context, q SpotQuery) ([]models.ParkingSpot, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddImageURL(ctx context.Context, id, url string) error
	CountAll(ctx context.Context) (int64, error)
}
