package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservo/models"
)

// CreateBookingAtomically inserts the booking and bumps the resource
// version in a single transaction, guarded by the version the caller
// observed when it computed the conflict set. If another booking
// committed in between, the guarded update matches nothing and the
// whole transaction aborts with ErrVersionConflict.
func (r *MongoBookingRepo) CreateBookingAtomically(
	ctx context.Context,
	booking *models.Booking,
	expectedResourceVersion int64,
) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{
			"id":      booking.ResourceID,
			"version": expectedResourceVersion,
		}
		update := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"updated_at": time.Now()},
		}

		res, err := r.resourceColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("resource version bump failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
