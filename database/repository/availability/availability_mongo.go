package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"telecare/database"
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &MongoAvailabilityRepo{
		coll: database.DB().Collection("availability"),
	}
}

// Get retrieves the weekly availability document for a provider.
func (repo *MongoAvailabilityRepo) Get(ctx context.Context, providerID string) (*models.WeeklyAvailability, error) {
	var avail models.WeeklyAvailability
	filter := bson.M{"provider_id": providerID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&avail); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching availability for provider %s: %w", providerID, err)
	}
	return &avail, nil
}

// Upsert overwrites the provider's availability document in place.
func (repo *MongoAvailabilityRepo) Upsert(ctx context.Context, avail *models.WeeklyAvailability) error {
	avail.UpdatedAt = time.Now().UTC()
	filter := bson.M{"provider_id": avail.ProviderID}
	update := bson.M{"$set": avail}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting availability for provider %s: %w", avail.ProviderID, err)
	}
	return nil
}
