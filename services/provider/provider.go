package provider

import (
	"context"
	"fmt"
	"time"

	providerRepo "smartpark/database/repository/provider"
	spotRepo "smartpark/database/repository/spot"
	userRepo "smartpark/database/repository/user"
	"smartpark/models"
	"smartpark/services/notification"
	"smartpark/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProviderService runs the provider-application workflow: a user applies to
// list a spot, an admin approves (creating the provider profile and the spot,
// initially BLOCKED) or rejects.
type ProviderService interface {
	Apply(ctx context.Context, userID string, app *models.ProviderApplication) (*models.ProviderApplication, error)
	MyApplications(ctx context.Context, userID string) ([]models.ProviderApplication, error)
	PendingApplications(ctx context.Context) ([]models.ProviderApplication, error)
	Approve(ctx context.Context, applicationID, remarks string) error
	Reject(ctx context.Context, applicationID, remarks string) error
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	SpotRepo spotRepo.SpotRepository
	UserRepo userRepo.UserRepository
	Notifier notification.NotificationService
}

// Apply submits a new application for review.
func (s *DefaultProviderService) Apply(ctx context.Context, userID string, app *models.ProviderApplication) (*models.ProviderApplication, error) {
	if app.Name == "" || app.TotalCapacity <= 0 || app.PricePerHour < 0 {
		return nil, fmt.Errorf("application requires a name, positive capacity and non-negative price")
	}

	app.ID = uuid.New().String()
	app.UserID = userID
	app.Status = models.ApplicationStatusPending
	app.AdminRemarks = ""

	// Coordinates extracted from the maps link take precedence over any
	// manually submitted latitude/longitude.
	if lat, lng, ok := utils.CoordinatesFromMapsLink(app.GoogleMapsLink); ok {
		app.Latitude = lat
		app.Longitude = lng
	}

	if err := s.Repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// MyApplications returns the caller's applications, most recent first.
func (s *DefaultProviderService) MyApplications(ctx context.Context, userID string) ([]models.ProviderApplication, error) {
	return s.Repo.FindApplicationsByUser(ctx, userID)
}

// PendingApplications returns applications awaiting an admin decision.
func (s *DefaultProviderService) PendingApplications(ctx context.Context) ([]models.ProviderApplication, error) {
	return s.Repo.FindApplicationsByStatus(ctx, models.ApplicationStatusPending)
}

// Approve promotes the applicant to PROVIDER (creating the profile if it is
// their first approval) and creates the spot from the application, initially
// BLOCKED until the provider activates it.
func (s *DefaultProviderService) Approve(ctx context.Context, applicationID, remarks string) error {
	app, err := s.pendingApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	prov, err := s.Repo.GetProviderByUser(ctx, app.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve provider for user %s: %w", app.UserID, err)
	}
	if prov == nil {
		prov = &models.Provider{
			ID:                 uuid.New().String(),
			UserID:             app.UserID,
			FullName:           app.Name,
			PANNumber:          app.PANNumber,
			GSTNumber:          app.GSTNumber,
			BankAccountNumber:  app.BankAccount,
			UPIID:              app.UPIID,
			VerificationStatus: models.ApplicationStatusApproved,
		}
		if err := s.Repo.CreateProvider(ctx, prov); err != nil {
			return err
		}
		if err := s.UserRepo.UpdateRole(ctx, app.UserID, models.RoleProvider); err != nil {
			return fmt.Errorf("failed to promote user %s: %w", app.UserID, err)
		}
	}

	spot := models.SpotFromApplication(app, prov.ID)
	spot.ID = uuid.New().String()
	if err := s.SpotRepo.Create(ctx, spot); err != nil {
		return err
	}

	app.Status = models.ApplicationStatusApproved
	app.AdminRemarks = remarks
	app.DecidedAt = time.Now()
	if err := s.Repo.UpdateApplication(ctx, app); err != nil {
		return err
	}

	s.notifyDecision(ctx, app.UserID, "Application approved",
		fmt.Sprintf("Your parking spot %q has been approved. Activate it to start receiving bookings.", app.Name),
		"success")
	return nil
}

// Reject closes the application with remarks.
func (s *DefaultProviderService) Reject(ctx context.Context, applicationID, remarks string) error {
	app, err := s.pendingApplication(ctx, applicationID)
	if err != nil {
		return err
	}

	app.Status = models.ApplicationStatusRejected
	app.AdminRemarks = remarks
	app.DecidedAt = time.Now()
	if err := s.Repo.UpdateApplication(ctx, app); err != nil {
		return err
	}

	s.notifyDecision(ctx, app.UserID, "Application rejected",
		fmt.Sprintf("Your application for %q was rejected. %s", app.Name, remarks), "danger")
	return nil
}

func (s *DefaultProviderService) pendingApplication(ctx context.Context, applicationID string) (*models.ProviderApplication, error) {
	app, err := s.Repo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("application %s not found", applicationID)
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, fmt.Errorf("application %s has already been decided", applicationID)
	}
	return app, nil
}

func (s *DefaultProviderService) notifyDecision(ctx context.Context, userID, title, message, ntype string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, userID, title, message, ntype); err != nil {
		utils.GetLogger().Warn("application decision notification failed",
			zap.String("userID", userID), zap.Error(err))
	}
}
