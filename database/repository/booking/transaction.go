package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"smartpark/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// createTxnMaxAttempts bounds the retry loop for write-conflict aborts.
const createTxnMaxAttempts = 5

// CreateConfirmed performs the capacity check and insert as one transaction.
//
// Bumping booking_seq on the spot document first makes every concurrent
// create on the same spot write-conflict inside the transaction, so the
// overlap count that follows is serialized per spot: two requests can never
// both observe count < capacity and both insert.
func (r *MongoBookingRepo) CreateConfirmed(ctx context.Context, booking *models.Booking, payment *models.Payment, capacity int) error {
	client := r.coll.Database().Client()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.spotColl.UpdateOne(sc,
			bson.M{"id": booking.SpotID},
			bson.M{"$inc": bson.M{"booking_seq": 1}},
		)
		if err != nil {
			return fmt.Errorf("failed to lock spot %s: %w", booking.SpotID, err)
		}
		if res.MatchedCount == 0 {
			return ErrSpotNotFound
		}

		count, err := r.coll.CountDocuments(sc, overlapFilter(booking.SpotID, booking.StartTime, booking.EndTime))
		if err != nil {
			return fmt.Errorf("failed to count overlapping bookings: %w", err)
		}
		if count >= int64(capacity) {
			return ErrCapacityExceeded
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if payment != nil {
			if _, err := r.paymentColl.InsertOne(sc, payment); err != nil {
				return fmt.Errorf("insert payment failed: %w", err)
			}
		}
		return nil
	}

	return r.runInTransaction(ctx, client, txnFn)
}

// CancelWithRefund flips the booking to CANCELLED and its SUCCESS payment to
// REFUNDED as one unit. The status filter makes the cancel conditional, so a
// lost race with a concurrent cancel surfaces as ErrNotConfirmed instead of a
// double refund.
func (r *MongoBookingRepo) CancelWithRefund(ctx context.Context, bookingID string) error {
	client := r.coll.Database().Client()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": bookingID, "status": models.BookingStatusConfirmed},
			bson.M{"$set": bson.M{"status": models.BookingStatusCancelled}},
		)
		if err != nil {
			return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
		}
		if res.MatchedCount == 0 {
			return ErrNotConfirmed
		}

		_, err = r.paymentColl.UpdateOne(sc,
			bson.M{"booking_id": bookingID, "status": models.PaymentStatusSuccess},
			bson.M{"$set": bson.M{"status": models.PaymentStatusRefunded}},
		)
		if err != nil {
			return fmt.Errorf("failed to refund payment for booking %s: %w", bookingID, err)
		}
		return nil
	}

	return r.runInTransaction(ctx, client, txnFn)
}

// runInTransaction executes txnFn inside a session transaction, retrying on
// transient aborts (write conflicts between concurrent creates on one spot).
// Business failures (ErrCapacityExceeded etc.) abort without retry.
func (r *MongoBookingRepo) runInTransaction(ctx context.Context, client *mongo.Client, txnFn func(mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var lastErr error
	for attempt := 0; attempt < createTxnMaxAttempts; attempt++ {
		lastErr = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			if err := sc.StartTransaction(); err != nil {
				return err
			}
			if err := txnFn(sc); err != nil {
				_ = sc.AbortTransaction(sc)
				return err
			}
			return sc.CommitTransaction(sc)
		})
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("booking transaction failed after %d attempts: %w", createTxnMaxAttempts, lastErr)
}

func isTransient(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError") ||
			serverErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
