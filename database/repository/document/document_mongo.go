package documentRepo

import (
	"context"
	"fmt"

	"telecare/database"
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocumentRepo implements DocumentRepository using MongoDB.
type MongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo constructs a new instance of MongoDocumentRepo.
func NewMongoDocumentRepo() DocumentRepository {
	return &MongoDocumentRepo{
		coll: database.DB().Collection("documents"),
	}
}

func (repo *MongoDocumentRepo) Create(ctx context.Context, doc *models.MedicalDocument) error {
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error creating document record: %w", err)
	}
	return nil
}

func (repo *MongoDocumentRepo) GetByID(ctx context.Context, id string) (*models.MedicalDocument, error) {
	var doc models.MedicalDocument
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching document %s: %w", id, err)
	}
	return &doc, nil
}

func (repo *MongoDocumentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.MedicalDocument
	for cursor.Next(ctx) {
		var d models.MedicalDocument
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("error decoding document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return docs, nil
}

func (repo *MongoDocumentRepo) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"summary": summary}})
	if err != nil {
		return fmt.Errorf("error updating document summary %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
