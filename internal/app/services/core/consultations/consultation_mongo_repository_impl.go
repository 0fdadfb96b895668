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

type ConsultationMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsultationMongoRepository(db *mongo.Client, dbName string) ConsultationRepository {
	return &ConsultationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionConsultations),
	}
}

// CreateConsultation honors a caller-provided hex ID so the blob object names
// can embed the consultation ID before the document exists.
func (r *ConsultationMongoRepository) CreateConsultation(ctx context.Context, consultationModel *models.Consultation) (string, error) {
	document := bson.M{
		"patientId": consultationModel.PatientID,
		"medicoId":  consultationModel.MedicoID,
		"confirmed": consultationModel.Confirmed,
		"createdAt": consultationModel.CreatedAt,
	}
	if consultationModel.AiDiagnosis != nil {
		document["aiDiagnosis"] = consultationModel.AiDiagnosis
		document["confidence"] = consultationModel.Confidence
	}
	if consultationModel.MultClass != nil {
		document["multClass"] = consultationModel.MultClass
		document["multClassConfidence"] = consultationModel.MultClassConfidence
	}
	if consultationModel.ID != "" {
		objectID, err := primitive.ObjectIDFromHex(consultationModel.ID)
		if err != nil {
			return "", exceptions.ErrMongoDBNotObjectID(err)
		}
		document["_id"] = objectID
	}

	result, err := r.Collection.InsertOne(ctx, document)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ConsultationMongoRepository) FindByID(ctx context.Context, consultationID string) (*models.Consultation, error) {
	objectID, err := primitive.ObjectIDFromHex(consultationID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var consultation models.Consultation
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&consultation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &consultation, nil
}

func (r *ConsultationMongoRepository) FindByIDs(ctx context.Context, consultationIDs []string) (map[string]*models.Consultation, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(consultationIDs))
	for _, consultationID := range consultationIDs {
		objectID, err := primitive.ObjectIDFromHex(consultationID)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	byID := make(map[string]*models.Consultation, len(objectIDs))
	if len(objectIDs) == 0 {
		return byID, nil
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var consultation models.Consultation
		if err := cursor.Decode(&consultation); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		byID[consultation.ID] = &consultation
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return byID, nil
}

func (r *ConsultationMongoRepository) FindConsultations(ctx context.Context, medicoID string, patientIDs []string) ([]models.Consultation, error) {
	filter := bson.M{}
	if medicoID != "" {
		filter["medicoId"] = medicoID
	}
	if patientIDs != nil {
		filter["patientId"] = bson.M{"$in": patientIDs}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var consultations []models.Consultation
	for cursor.Next(ctx) {
		var consultation models.Consultation
		if err := cursor.Decode(&consultation); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		consultations = append(consultations, consultation)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return consultations, nil
}

// ConfirmDiagnosis sets the final diagnosis and the confirmed flag in one
// atomic update. Re-confirming simply overwrites the previous value.
func (r *ConsultationMongoRepository) ConfirmDiagnosis(ctx context.Context, consultationID string, diagnosis models.Diagnosis) error {
	objectID, err := primitive.ObjectIDFromHex(consultationID)
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
		return exceptions.ErrConsultationNotExist(mongo.ErrNoDocuments)
	}
	return nil
}

func (r *ConsultationMongoRepository) CountConsultations(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
