package provider

import (
	"context"
	"testing"

	"smartpark/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviderRepo struct {
	providers    map[string]*models.Provider
	applications map[string]*models.ProviderApplication
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		providers:    make(map[string]*models.Provider),
		applications: make(map[string]*models.ProviderApplication),
	}
}

func (f *fakeProviderRepo) CreateProvider(ctx context.Context, provider *models.Provider) error {
	cp := *provider
	f.providers[provider.UserID] = &cp
	return nil
}

func (f *fakeProviderRepo) GetProviderByUser(ctx context.Context, userID string) (*models.Provider, error) {
	p, ok := f.providers[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviderRepo) CreateApplication(ctx context.Context, app *models.ProviderApplication) error {
	cp := *app
	f.applications[app.ID] = &cp
	return nil
}

func (f *fakeProviderRepo) GetApplicationByID(ctx context.Context, id string) (*models.ProviderApplication, error) {
	a, ok := f.applications[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeProviderRepo) FindApplicationsByUser(ctx context.Context, userID string) ([]models.ProviderApplication, error) {
	var out []models.ProviderApplication
	for _, a := range f.applications {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) FindApplicationsByStatus(ctx context.Context, status string) ([]models.ProviderApplication, error) {
	var out []models.ProviderApplication
	for _, a := range f.applications {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) UpdateApplication(ctx context.Context, app *models.ProviderApplication) error {
	cp := *app
	f.applications[app.ID] = &cp
	return nil
}

func TestApplyDerivesCoordinatesFromMapsLink(t *testing.T) {
	svc := &DefaultProviderService{Repo: newFakeProviderRepo()}

	app, err := svc.Apply(context.Background(), "user-1", &models.ProviderApplication{
		Name:           "Central Garage",
		TotalCapacity:  10,
		PricePerHour:   10,
		GoogleMapsLink: "https://www.google.com/maps/@12.971599,77.594566,17z",
		Latitude:       1.0,
		Longitude:      1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 12.971599, app.Latitude)
	assert.Equal(t, 77.594566, app.Longitude)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
}

func TestApplyKeepsSubmittedCoordinatesWithoutMapsLink(t *testing.T) {
	svc := &DefaultProviderService{Repo: newFakeProviderRepo()}

	app, err := svc.Apply(context.Background(), "user-1", &models.ProviderApplication{
		Name:          "Side Street Lot",
		TotalCapacity: 4,
		PricePerHour:  5,
		Latitude:      28.613939,
		Longitude:     77.209021,
	})
	require.NoError(t, err)

	assert.Equal(t, 28.613939, app.Latitude)
	assert.Equal(t, 77.209021, app.Longitude)
}

func TestApplyRejectsInvalidApplication(t *testing.T) {
	svc := &DefaultProviderService{Repo: newFakeProviderRepo()}

	_, err := svc.Apply(context.Background(), "user-1", &models.ProviderApplication{
		Name:          "",
		TotalCapacity: 10,
		PricePerHour:  10,
	})
	assert.Error(t, err)
}
