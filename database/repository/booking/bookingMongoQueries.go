// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountOverlapping counts CONFIRMED bookings on spotID overlapping [start, end).
func (r *MongoBookingRepo) CountOverlapping(ctx context.Context, spotID string, start, end time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, overlapFilter(spotID, start, end))
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings for spot %s: %w", spotID, err)
	}
	return n, nil
}

// FindByID retrieves a booking by its unique ID. Returns (nil, nil) when absent.
func (r *MongoBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// FindByUser returns the user's bookings, most recent first.
func (r *MongoBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

// FindByOwner returns bookings across all spots owned by ownerID, most recent
// first. The spot ids are resolved explicitly; no lazy joins.
func (r *MongoBookingRepo) FindByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	cursor, err := r.spotColl.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetProjection(bson.M{"id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spots for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var spots []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode spots for owner %s: %w", ownerID, err)
	}
	if len(spots) == 0 {
		return nil, nil
	}

	spotIDs := make([]string, 0, len(spots))
	for _, s := range spots {
		spotIDs = append(spotIDs, s.ID)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	bCursor, err := r.coll.Find(ctx, bson.M{"spot_id": bson.M{"$in": spotIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for owner %s: %w", ownerID, err)
	}
	defer bCursor.Close(ctx)

	var bookings []models.Booking
	if err := bCursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for owner %s: %w", ownerID, err)
	}
	return bookings, nil
}

// Save inserts or fully replaces a booking document.
func (r *MongoBookingRepo) Save(ctx context.Context, booking *models.Booking) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking, opts); err != nil {
		return fmt.Errorf("failed to save booking %s: %w", booking.ID, err)
	}
	return nil
}

// FindPaymentByBooking retrieves the payment record for a booking, if any.
func (r *MongoBookingRepo) FindPaymentByBooking(ctx context.Context, bookingID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.paymentColl.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}

// AggregateRevenue sums totalPrice across all bookings, cancelled included.
func (r *MongoBookingRepo) AggregateRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode revenue aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// CountByStatus counts bookings in the given status.
func (r *MongoBookingRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by status %s: %w", status, err)
	}
	return n, nil
}

// CountAll counts all bookings.
func (r *MongoBookingRepo) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
