package spot

import (
	"context"
	"fmt"

	providerRepo "smartpark/database/repository/provider"
	spotRepo "smartpark/database/repository/spot"
	"smartpark/models"
	"smartpark/services/storage"
	"smartpark/utils"

	"github.com/google/uuid"
)

// SpotService manages the parking-spot catalog.
type SpotService interface {
	Add(ctx context.Context, ownerID string, spot *models.ParkingSpot) (*models.ParkingSpot, error)
	Update(ctx context.Context, ownerID string, spot *models.ParkingSpot) (*models.ParkingSpot, error)
	Delete(ctx context.Context, ownerID, spotID string) error
	GetByID(ctx context.Context, spotID string) (*models.ParkingSpot, error)
	ListMine(ctx context.Context, ownerID string) ([]models.ParkingSpot, error)
	Search(ctx context.Context, q spotRepo.SpotQuery) ([]models.ParkingSpot, error)
	SetStatus(ctx context.Context, ownerID, spotID, status string) error
	AttachImage(ctx context.Context, ownerID, spotID, localFilePath string) (string, error)
}

// DefaultSpotService implements SpotService.
type DefaultSpotService struct {
	Repo         spotRepo.SpotRepository
	ProviderRepo providerRepo.ProviderRepository
	Storage      storage.StorageService
}

// Add lists a new spot for an approved provider. Users without a provider
// profile must go through the application workflow instead.
func (s *DefaultSpotService) Add(ctx context.Context, ownerID string, spot *models.ParkingSpot) (*models.ParkingSpot, error) {
	provider, err := s.ProviderRepo.GetProviderByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider for user %s: %w", ownerID, err)
	}
	if provider == nil {
		return nil, fmt.Errorf("no provider profile: submit a provider application first")
	}
	if spot.Name == "" || spot.TotalCapacity <= 0 || spot.PricePerHour < 0 {
		return nil, fmt.Errorf("spot requires a name, positive capacity and non-negative price")
	}

	spot.ID = uuid.New().String()
	spot.ProviderID = provider.ID
	spot.OwnerID = ownerID
	spot.Status = models.SpotStatusActive
	applyMapsCoordinates(spot)

	if err := s.Repo.Create(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// Update replaces the spot's listing details. Capacity and rate changes take
// effect for future bookings only; committed bookings keep their price.
func (s *DefaultSpotService) Update(ctx context.Context, ownerID string, spot *models.ParkingSpot) (*models.ParkingSpot, error) {
	existing, err := s.ownedSpot(ctx, ownerID, spot.ID)
	if err != nil {
		return nil, err
	}

	// System-controlled fields are not client-writable.
	spot.ProviderID = existing.ProviderID
	spot.OwnerID = existing.OwnerID
	spot.Status = existing.Status
	spot.BookingSeq = existing.BookingSeq
	spot.CreatedAt = existing.CreatedAt

	if spot.TotalCapacity <= 0 || spot.PricePerHour < 0 {
		return nil, fmt.Errorf("spot requires positive capacity and non-negative price")
	}
	applyMapsCoordinates(spot)

	if err := s.Repo.Update(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// Delete removes the owner's spot from the catalog.
func (s *DefaultSpotService) Delete(ctx context.Context, ownerID, spotID string) error {
	if _, err := s.ownedSpot(ctx, ownerID, spotID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, spotID)
}

// GetByID returns the spot, or (nil, nil) when absent.
func (s *DefaultSpotService) GetByID(ctx context.Context, spotID string) (*models.ParkingSpot, error) {
	return s.Repo.GetByID(ctx, spotID)
}

// ListMine returns all spots owned by ownerID, any status.
func (s *DefaultSpotService) ListMine(ctx context.Context, ownerID string) ([]models.ParkingSpot, error) {
	return s.Repo.FindByOwner(ctx, ownerID)
}

// Search returns catalog matches. Public searches only ever see ACTIVE spots.
func (s *DefaultSpotService) Search(ctx context.Context, q spotRepo.SpotQuery) ([]models.ParkingSpot, error) {
	q.Status = models.SpotStatusActive
	return s.Repo.Search(ctx, q)
}

// SetStatus moves the spot between ACTIVE, MAINTENANCE and BLOCKED.
func (s *DefaultSpotService) SetStatus(ctx context.Context, ownerID, spotID, status string) error {
	switch status {
	case models.SpotStatusActive, models.SpotStatusMaintenance, models.SpotStatusBlocked:
	default:
		return fmt.Errorf("invalid spot status %q", status)
	}
	if _, err := s.ownedSpot(ctx, ownerID, spotID); err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, spotID, status)
}

// AttachImage uploads a spot photo to Cloudinary and records its URL.
func (s *DefaultSpotService) AttachImage(ctx context.Context, ownerID, spotID, localFilePath string) (string, error) {
	if s.Storage == nil {
		return "", fmt.Errorf("image storage is not configured")
	}
	if _, err := s.ownedSpot(ctx, ownerID, spotID); err != nil {
		return "", err
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, "parking_spots/"+spotID)
	if err != nil {
		return "", err
	}
	url := s.Storage.ResolveURL(publicID)
	if err := s.Repo.AddImageURL(ctx, spotID, url); err != nil {
		return "", err
	}
	return url, nil
}

// applyMapsCoordinates derives latitude/longitude from the spot's maps link.
// Extracted coordinates take precedence over manually submitted ones.
func applyMapsCoordinates(spot *models.ParkingSpot) {
	if lat, lng, ok := utils.CoordinatesFromMapsLink(spot.GoogleMapsLink); ok {
		spot.Latitude = lat
		spot.Longitude = lng
	}
}

func (s *DefaultSpotService) ownedSpot(ctx context.Context, ownerID, spotID string) (*models.ParkingSpot, error) {
	existing, err := s.Repo.GetByID(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spot %s: %w", spotID, err)
	}
	if existing == nil || existing.OwnerID != ownerID {
		return nil, fmt.Errorf("parking spot not found")
	}
	return existing, nil
}
