package database

import (
	"context"
	"ptmd-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. The unique
// index on patients.cpf is what makes patient deduplication safe under
// concurrent intakes; the rest are query accelerators.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	_, err := db.Collection(constvars.MongoCollectionPatients).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cpf", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(constvars.MongoCollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(constvars.MongoCollectionConsultations).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "medicoId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(constvars.MongoCollectionImages).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "consultationId", Value: 1}, {Key: "position", Value: 1}},
	})
	return err
}
