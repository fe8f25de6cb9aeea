package appointmentRepo

import (
	"context"
	"fmt"

	"telecare/database"
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the appointment collection indexes. The partial unique
// index on (provider_id, start_time) for active statuses is the storage-level
// enforcement of the no-double-booking invariant.
func EnsureIndexes(ctx context.Context) error {
	coll := database.DB().Collection("appointments")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("appointment_id_unique"),
		},
		{
			Keys: bson.D{
				{Key: "provider_id", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("provider_slot_active_unique").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": models.ActiveStatuses()},
				}),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("patient_start"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("status_start"),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
