package consultations

import (
	"context"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ImageMongoRepository struct {
	Collection *mongo.Collection
}

func NewImageMongoRepository(db *mongo.Client, dbName string) ImageRepository {
	return &ImageMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionImages),
	}
}

func (r *ImageMongoRepository) CreateImage(ctx context.Context, imageModel *models.Image) (string, error) {
	result, err := r.Collection.InsertOne(ctx, imageModel)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ImageMongoRepository) FindByID(ctx context.Context, imageID string) (*models.Image, error) {
	objectID, err := primitive.ObjectIDFromHex(imageID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var image models.Image
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &image, nil
}

func (r *ImageMongoRepository) FindByConsultationID(ctx context.Context, consultationID string) ([]models.Image, error) {
	filter := bson.M{"consultationId": consultationID}
	return r.findSortedByPosition(ctx, filter)
}

func (r *ImageMongoRepository) FindByConsultationIDs(ctx context.Context, consultationIDs []string) (map[string][]models.Image, error) {
	byConsultation := make(map[string][]models.Image, len(consultationIDs))
	if len(consultationIDs) == 0 {
		return byConsultation, nil
	}

	filter := bson.M{"consultationId": bson.M{"$in": consultationIDs}}
	images, err := r.findSortedByPosition(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, image := range images {
		byConsultation[image.ConsultationID] = append(byConsultation[image.ConsultationID], image)
	}
	return byConsultation, nil
}

func (r *ImageMongoRepository) ConfirmDiagnosis(ctx context.Context, imageID string, diagnosis models.Diagnosis) error {
	objectID, err := primitive.ObjectIDFromHex(imageID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"finalDiagnosis": diagnosis,
		"confirmed":      true,
	}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrImageNotExist(mongo.ErrNoDocuments)
	}
	return nil
}

// FindConfirmedImages returns every image a doctor has confirmed, across all
// consultations, for the dataset export.
func (r *ImageMongoRepository) FindConfirmedImages(ctx context.Context) ([]models.Image, error) {
	return r.findSortedByPosition(ctx, bson.M{"confirmed": true})
}

func (r *ImageMongoRepository) CountImages(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

func (r *ImageMongoRepository) findSortedByPosition(ctx context.Context, filter bson.M) ([]models.Image, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "consultationId", Value: 1},
		{Key: "position", Value: 1},
	})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var images []models.Image
	for cursor.Next(ctx) {
		var image models.Image
		if err := cursor.Decode(&image); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		images = append(images, image)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return images, nil
}
