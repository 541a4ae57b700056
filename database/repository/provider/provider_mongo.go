package providerRepo

import (
	"context"
	"fmt"
	"time"

	"smartpark/database"
	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	providerColl *mongo.Collection
	appColl      *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	db := database.DB()
	repo := &MongoProviderRepo{
		providerColl: db.Collection("providers"),
		appColl:      db.Collection("provider_applications"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	providerIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.providerColl.Indexes().CreateMany(ctx, providerIndexes); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}

	appIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.appColl.Indexes().CreateMany(ctx, appIndexes); err != nil {
		return fmt.Errorf("failed to create application indexes: %w", err)
	}
	return nil
}

// CreateProvider inserts a new provider document.
func (r *MongoProviderRepo) CreateProvider(ctx context.Context, provider *models.Provider) error {
	provider.CreatedAt = time.Now()
	if _, err := r.providerColl.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// GetProviderByUser retrieves the provider profile backing userID. Returns
// (nil, nil) when the user is not a provider.
func (r *MongoProviderRepo) GetProviderByUser(ctx context.Context, userID string) (*models.Provider, error) {
	var provider models.Provider
	err := r.providerColl.FindOne(ctx, bson.M{"user_id": userID}).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider for user %s: %w", userID, err)
	}
	return &provider, nil
}

// CreateApplication inserts a new provider application.
func (r *MongoProviderRepo) CreateApplication(ctx context.Context, app *models.ProviderApplication) error {
	app.CreatedAt = time.Now()
	if _, err := r.appColl.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("failed to create provider application: %w", err)
	}
	return nil
}

// GetApplicationByID retrieves an application. Returns (nil, nil) when absent.
func (r *MongoProviderRepo) GetApplicationByID(ctx context.Context, id string) (*models.ProviderApplication, error) {
	var app models.ProviderApplication
	err := r.appColl.FindOne(ctx, bson.M{"id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}
	return &app, nil
}

// FindApplicationsByUser returns the user's applications, most recent first.
func (r *MongoProviderRepo) FindApplicationsByUser(ctx context.Context, userID string) ([]models.ProviderApplication, error) {
	return r.findApplications(ctx, bson.M{"user_id": userID})
}

// FindApplicationsByStatus returns applications in the given status.
func (r *MongoProviderRepo) FindApplicationsByStatus(ctx context.Context, status string) ([]models.ProviderApplication, error) {
	return r.findApplications(ctx, bson.M{"status": status})
}

func (r *MongoProviderRepo) findApplications(ctx context.Context, filter bson.M) ([]models.ProviderApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.appColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.ProviderApplication
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode provider applications: %w", err)
	}
	return apps, nil
}

// UpdateApplication replaces an application document.
func (r *MongoProviderRepo) UpdateApplication(ctx context.Context, app *models.ProviderApplication) error {
	result, err := r.appColl.ReplaceOne(ctx, bson.M{"id": app.ID}, app)
	if err != nil {
		return fmt.Errorf("failed to update application %s: %w", app.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("application %s not found", app.ID)
	}
	return nil
}
