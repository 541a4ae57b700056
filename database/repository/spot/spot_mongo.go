package spotRepo

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

// MongoSpotRepo implements SpotRepository using MongoDB.
type MongoSpotRepo struct {
	coll *mongo.Collection
}

// NewMongoSpotRepo creates a new instance of SpotRepository using MongoDB.
func NewMongoSpotRepo() SpotRepository {
	coll := database.DB().Collection("parking_spots")
	repo := &MongoSpotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSpotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "district", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create spot indexes: %w", err)
	}
	return nil
}

// Create inserts a new parking spot document.
func (r *MongoSpotRepo) Create(ctx context.Context, spot *models.ParkingSpot) error {
	now := time.Now()
	spot.CreatedAt = now
	spot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, spot); err != nil {
		return fmt.Errorf("failed to create parking spot: %w", err)
	}
	return nil
}

// Update replaces an existing parking spot document.
func (r *MongoSpotRepo) Update(ctx context.Context, spot *models.ParkingSpot) error {
	spot.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": spot.ID}, spot)
	if err != nil {
		return fmt.Errorf("failed to update parking spot %s: %w", spot.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("parking spot %s not found", spot.ID)
	}
	return nil
}

// Delete removes a parking spot document by its ID.
func (r *MongoSpotRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete parking spot %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("parking spot %s not found", id)
	}
	return nil
}

// GetByID retrieves a parking spot by its unique ID. Returns (nil, nil) when absent.
func (r *MongoSpotRepo) GetByID(ctx context.Context, id string) (*models.ParkingSpot, error) {
	var spot models.ParkingSpot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parking spot %s: %w", id, err)
	}
	return &spot, nil
}

// FindByOwner returns all spots owned by ownerID.
func (r *MongoSpotRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.ParkingSpot, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spots for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var spots []models.ParkingSpot
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode spots for owner %s: %w", ownerID, err)
	}
	return spots, nil
}

// Search filters the catalog by location and name. Name matching is a
// case-insensitive substring match.
func (r *MongoSpotRepo) Search(ctx context.Context, q SpotQuery) ([]models.ParkingSpot, error) {
	filter := bson.M{}
	if q.State != "" {
		filter["state"] = q.State
	}
	if q.District != "" {
		filter["district"] = q.District
	}
	if q.Name != "" {
		filter["name"] = bson.M{"$regex": q.Name, "$options": "i"}
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search parking spots: %w", err)
	}
	defer cursor.Close(ctx)

	var spots []models.ParkingSpot
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode parking spots: %w", err)
	}
	return spots, nil
}

// UpdateStatus sets the spot's lifecycle status.
func (r *MongoSpotRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update status for spot %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("parking spot %s not found", id)
	}
	return nil
}

// AddImageURL appends an image URL to the spot, skipping duplicates.
func (r *MongoSpotRepo) AddImageURL(ctx context.Context, id, url string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"image_urls": url}})
	if err != nil {
		return fmt.Errorf("failed to add image to spot %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("parking spot %s not found", id)
	}
	return nil
}

// CountAll counts all parking spots.
func (r *MongoSpotRepo) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count parking spots: %w", err)
	}
	return n, nil
}
