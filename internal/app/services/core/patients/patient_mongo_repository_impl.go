package patients

import (
	"context"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

// UpsertByCPF inserts the patient if no document with the CPF exists;
// otherwise it refreshes nome (when non-empty) and dataNascimento (when
// provided) on the existing document. CPF and sexo never change after
// creation. FindOneAndUpdate is a single atomic operation, so two concurrent
// resolutions of the same CPF cannot both insert; the unique index on cpf
// backs this up, and a losing racer that still hits the duplicate-key error
// retries once, now matching the winner's document.
func (r *PatientMongoRepository) UpsertByCPF(ctx context.Context, patientModel *models.Patient) (*models.Patient, error) {
	filter := bson.M{"cpf": patientModel.CPF}
	update := bson.M{"$setOnInsert": bson.M{
		"cpf":       patientModel.CPF,
		"sexo":      patientModel.Sexo,
		"createdAt": patientModel.CreatedAt,
	}}
	set := bson.M{}
	if patientModel.Nome != "" {
		set["nome"] = patientModel.Nome
	}
	if patientModel.DataNascimento != nil {
		set["dataNascimento"] = patientModel.DataNascimento
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var patient models.Patient
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&patient)
	if mongo.IsDuplicateKeyError(err) {
		err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&patient)
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &patient, nil
}

func (r *PatientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var patient models.Patient
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

func (r *PatientMongoRepository) FindByIDs(ctx context.Context, patientIDs []string) (map[string]*models.Patient, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(patientIDs))
	for _, patientID := range patientIDs {
		objectID, err := primitive.ObjectIDFromHex(patientID)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	byID := make(map[string]*models.Patient, len(objectIDs))
	if len(objectIDs) == 0 {
		return byID, nil
	}

	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var patient models.Patient
		if err := cursor.Decode(&patient); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		byID[patient.ID] = &patient
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return byID, nil
}

// SearchPatients filters by nome substring (case-insensitive) and exact CPF.
// Empty filters are skipped; both present means both must match.
func (r *PatientMongoRepository) SearchPatients(ctx context.Context, nome, cpf string) ([]models.Patient, error) {
	filter := bson.M{}
	if nome != "" {
		filter["nome"] = bson.M{"$regex": regexp.QuoteMeta(nome), "$options": "i"}
	}
	if cpf != "" {
		filter["cpf"] = cpf
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	for cursor.Next(ctx) {
		var patient models.Patient
		if err := cursor.Decode(&patient); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		patients = append(patients, patient)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

func (r *PatientMongoRepository) CountPatients(ctx context.Context) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
