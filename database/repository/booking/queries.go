package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"reservo/models"
)

// ListOccurrencesByResource flattens the occurrence sets of every
// confirmed booking against the resource, sorted ascending by date.
// This is the committed-commitment view the conflict detector runs
// against.
func (r *MongoBookingRepo) ListOccurrencesByResource(resourceID string) ([]models.Occurrence, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"resource_id": resourceID,
			"status":      models.BookingStatusConfirmed,
		}}},
		bson.D{{Key: "$unwind", Value: "$occurrences"}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$occurrences"}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "date", Value: 1},
			{Key: "slot.start", Value: 1},
		}}},
	}

	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate occurrences for resource %s: %w", resourceID, err)
	}
	defer cursor.Close(ctx)

	var occurrences []models.Occurrence
	for cursor.Next(ctx) {
		var occ models.Occurrence
		if err := cursor.Decode(&occ); err != nil {
			return nil, fmt.Errorf("failed to decode occurrence: %w", err)
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
