package availabilityRepo

import (
	"context"
	"fmt"

	"telecare/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique provider index on the availability collection.
func EnsureIndexes(ctx context.Context) error {
	coll := database.DB().Collection("availability")
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "provider_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("provider_unique"),
	}
	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
