package consultations

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/app/services/core/patients"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/dto/responses"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type consultationUsecase struct {
	ConsultationRepository ConsultationRepository
	ImageRepository        ImageRepository
	PatientRegistry        patients.PatientRegistry
	PatientRepository      patients.PatientRepository
	Storage                contracts.Storage
	Classifier             contracts.ClassifierClient
	EventPublisher         contracts.EventPublisher
	Transactor             contracts.Transactor
	Log                    *zap.Logger
}

func NewConsultationUsecase(
	consultationRepository ConsultationRepository,
	imageRepository ImageRepository,
	patientRegistry patients.PatientRegistry,
	patientRepository patients.PatientRepository,
	storage contracts.Storage,
	classifier contracts.ClassifierClient,
	eventPublisher contracts.EventPublisher,
	transactor contracts.Transactor,
	logger *zap.Logger,
) ConsultationUsecase {
	return &consultationUsecase{
		ConsultationRepository: consultationRepository,
		ImageRepository:        imageRepository,
		PatientRegistry:        patientRegistry,
		PatientRepository:      patientRepository,
		Storage:                storage,
		Classifier:             classifier,
		EventPublisher:         eventPublisher,
		Transactor:             transactor,
		Log:                    logger,
	}
}

// CreateConsultation runs the whole intake: resolve the patient by CPF,
// upload and classify every image in submission order, then persist the
// consultation and its images in one transaction. Any failure along the way
// fails the whole request and removes the blobs uploaded so far; only the
// patient document may survive, which is harmless because resolution is
// idempotent per CPF.
func (u *consultationUsecase) CreateConsultation(ctx context.Context, session *models.Session, request *requests.CreateConsultation) (*responses.Consultation, error) {
	if len(request.Images) == 0 {
		return nil, exceptions.ErrAtLeastOneImage(fmt.Errorf("no images in request"))
	}

	patient, err := u.PatientRegistry.ResolvePatient(ctx, &request.Patient)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	consultation := &models.Consultation{
		ID:        primitive.NewObjectID().Hex(),
		PatientID: patient.ID,
		MedicoID:  session.UserID,
		CreatedAt: now,
	}

	images := make([]*models.Image, 0, len(request.Images))
	uploadedObjects := make([]string, 0, len(request.Images))

	for position, upload := range request.Images {
		objectName := buildObjectName(consultation.ID, upload.FileName)

		if err := u.Storage.UploadObject(ctx, objectName, upload.Content, upload.ContentType); err != nil {
			u.removeUploadedObjects(uploadedObjects)
			return nil, err
		}
		uploadedObjects = append(uploadedObjects, objectName)

		prediction, err := u.Classifier.Predict(ctx, upload.Content, upload.FileName, upload.ContentType)
		if err != nil {
			u.removeUploadedObjects(uploadedObjects)
			return nil, err
		}

		image := &models.Image{
			ConsultationID: consultation.ID,
			Position:       position,
			ObjectName:     objectName,
			FileName:       upload.FileName,
			FileSize:       int64(len(upload.Content)),
			ContentType:    upload.ContentType,
			CreatedAt:      now,
		}
		if prediction != nil && prediction.Class != "" {
			class := prediction.Class
			confidence := prediction.Probabilidade
			image.AiDiagnosis = &class
			image.Confidence = &confidence
			image.MultClass = prediction.MultClass
			image.MultClassConfidence = prediction.ProbabilidadeMultClass

			// The consultation snapshot comes from the first image, in
			// submission order, that produced a primary class.
			if consultation.AiDiagnosis == nil {
				consultation.AiDiagnosis = &class
				consultation.Confidence = &confidence
				consultation.MultClass = prediction.MultClass
				consultation.MultClassConfidence = prediction.ProbabilidadeMultClass
			}
		}
		images = append(images, image)
	}

	err = u.Transactor.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := u.ConsultationRepository.CreateConsultation(txCtx, consultation); err != nil {
			return err
		}
		for _, image := range images {
			imageID, err := u.ImageRepository.CreateImage(txCtx, image)
			if err != nil {
				return err
			}
			image.ID = imageID
		}
		return nil
	})
	if err != nil {
		u.removeUploadedObjects(uploadedObjects)
		return nil, err
	}

	u.publishEvent(ctx, constvars.EventConsultationCreated, consultationCreatedEvent{
		ConsultationID: consultation.ID,
		PatientID:      patient.ID,
		MedicoID:       session.UserID,
		ImageCount:     len(images),
	})

	utils.LogBusinessEvent(u.Log, "consultation_created", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingConsultationIDKey, consultation.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.Int("image_count", len(images)),
	)

	imageModels := make([]models.Image, 0, len(images))
	for _, image := range images {
		imageModels = append(imageModels, *image)
	}
	return buildConsultationResponse(consultation, patient, imageModels), nil
}

func (u *consultationUsecase) ListConsultations(ctx context.Context, session *models.Session, filters *requests.ListConsultations) ([]responses.Consultation, error) {
	nome := strings.TrimSpace(filters.Nome)
	cpf := utils.SanitizeCPF(filters.CPF)

	var patientIDs []string
	if nome != "" || cpf != "" {
		matched, err := u.PatientRepository.SearchPatients(ctx, nome, cpf)
		if err != nil {
			return nil, err
		}
		patientIDs = make([]string, 0, len(matched))
		for _, patient := range matched {
			patientIDs = append(patientIDs, patient.ID)
		}
		if len(patientIDs) == 0 {
			return []responses.Consultation{}, nil
		}
	}

	medicoID := session.UserID
	if session.IsAdmin() {
		medicoID = ""
	}

	consultations, err := u.ConsultationRepository.FindConsultations(ctx, medicoID, patientIDs)
	if err != nil {
		return nil, err
	}
	if len(consultations) == 0 {
		return []responses.Consultation{}, nil
	}

	consultationIDs := make([]string, 0, len(consultations))
	patientIDSet := make(map[string]struct{}, len(consultations))
	for _, consultation := range consultations {
		consultationIDs = append(consultationIDs, consultation.ID)
		patientIDSet[consultation.PatientID] = struct{}{}
	}
	allPatientIDs := make([]string, 0, len(patientIDSet))
	for patientID := range patientIDSet {
		allPatientIDs = append(allPatientIDs, patientID)
	}

	patientsByID, err := u.PatientRepository.FindByIDs(ctx, allPatientIDs)
	if err != nil {
		return nil, err
	}
	imagesByConsultation, err := u.ImageRepository.FindByConsultationIDs(ctx, consultationIDs)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Consultation, 0, len(consultations))
	for i := range consultations {
		consultation := &consultations[i]
		result = append(result, *buildConsultationResponse(
			consultation,
			patientsByID[consultation.PatientID],
			imagesByConsultation[consultation.ID],
		))
	}
	return result, nil
}

func (u *consultationUsecase) GetConsultationByID(ctx context.Context, session *models.Session, consultationID string) (*responses.Consultation, error) {
	consultation, err := u.findAccessibleConsultation(ctx, session, consultationID)
	if err != nil {
		return nil, err
	}
	return u.hydrateConsultation(ctx, consultation)
}

func (u *consultationUsecase) ConfirmConsultationDiagnosis(ctx context.Context, session *models.Session, consultationID string, request *requests.ConfirmDiagnosis) (*responses.Consultation, error) {
	diagnosis, err := models.ParseDiagnosis(request.FinalDiagnosis)
	if err != nil {
		return nil, exceptions.ErrInvalidDiagnosis(err)
	}

	consultation, err := u.findAccessibleConsultation(ctx, session, consultationID)
	if err != nil {
		return nil, err
	}

	if err := u.ConsultationRepository.ConfirmDiagnosis(ctx, consultation.ID, diagnosis); err != nil {
		return nil, err
	}
	consultation.FinalDiagnosis = &diagnosis
	consultation.Confirmed = true

	u.publishEvent(ctx, constvars.EventDiagnosisConfirmed, diagnosisConfirmedEvent{
		Level:          "consultation",
		ConsultationID: consultation.ID,
		FinalDiagnosis: diagnosis.String(),
	})

	return u.hydrateConsultation(ctx, consultation)
}

// ConfirmImageDiagnosis confirms one image independently of the consultation
// it belongs to; neither the consultation snapshot nor its confirmed flag is
// touched. Access is checked against the owning consultation.
func (u *consultationUsecase) ConfirmImageDiagnosis(ctx context.Context, session *models.Session, imageID string, request *requests.ConfirmDiagnosis) (*responses.Image, error) {
	diagnosis, err := models.ParseDiagnosis(request.FinalDiagnosis)
	if err != nil {
		return nil, exceptions.ErrInvalidDiagnosis(err)
	}

	image, err := u.findAccessibleImage(ctx, session, imageID)
	if err != nil {
		return nil, err
	}

	if err := u.ImageRepository.ConfirmDiagnosis(ctx, image.ID, diagnosis); err != nil {
		return nil, err
	}
	image.FinalDiagnosis = &diagnosis
	image.Confirmed = true

	u.publishEvent(ctx, constvars.EventDiagnosisConfirmed, diagnosisConfirmedEvent{
		Level:          "image",
		ConsultationID: image.ConsultationID,
		ImageID:        image.ID,
		FinalDiagnosis: diagnosis.String(),
	})

	response := buildImageResponse(image)
	return &response, nil
}

func (u *consultationUsecase) GetImageFile(ctx context.Context, session *models.Session, imageID string) (io.ReadCloser, *models.Image, error) {
	image, err := u.findAccessibleImage(ctx, session, imageID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := u.Storage.GetObject(ctx, image.ObjectName)
	if err != nil {
		return nil, nil, err
	}
	return reader, image, nil
}

func (u *consultationUsecase) findAccessibleConsultation(ctx context.Context, session *models.Session, consultationID string) (*models.Consultation, error) {
	consultation, err := u.ConsultationRepository.FindByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}
	if consultation == nil {
		return nil, exceptions.ErrConsultationNotExist(fmt.Errorf("consultation %s not found", consultationID))
	}
	if !session.CanAccess(consultation) {
		return nil, exceptions.ErrConsultationForbidden(fmt.Errorf("user %s does not own consultation %s", session.UserID, consultationID))
	}
	return consultation, nil
}

func (u *consultationUsecase) findAccessibleImage(ctx context.Context, session *models.Session, imageID string) (*models.Image, error) {
	image, err := u.ImageRepository.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, exceptions.ErrImageNotExist(fmt.Errorf("image %s not found", imageID))
	}
	if _, err := u.findAccessibleConsultation(ctx, session, image.ConsultationID); err != nil {
		return nil, err
	}
	return image, nil
}

func (u *consultationUsecase) hydrateConsultation(ctx context.Context, consultation *models.Consultation) (*responses.Consultation, error) {
	patient, err := u.PatientRepository.FindByID(ctx, consultation.PatientID)
	if err != nil {
		return nil, err
	}
	images, err := u.ImageRepository.FindByConsultationID(ctx, consultation.ID)
	if err != nil {
		return nil, err
	}
	return buildConsultationResponse(consultation, patient, images), nil
}

// removeUploadedObjects is best-effort compensation after a failed intake.
// A fresh context is used so cleanup still runs when the request context is
// already dead.
func (u *consultationUsecase) removeUploadedObjects(objectNames []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, objectName := range objectNames {
		if err := u.Storage.RemoveObject(ctx, objectName); err != nil {
			u.Log.Warn("failed to remove uploaded object after failed intake",
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(err),
			)
		}
	}
}

// publishEvent is fire and forget: audit events never fail the request.
func (u *consultationUsecase) publishEvent(ctx context.Context, eventType string, payload interface{}) {
	if err := u.EventPublisher.Publish(ctx, eventType, payload); err != nil {
		u.Log.Warn("failed to publish event",
			zap.String(constvars.LoggingEventKey, eventType),
			zap.Error(err),
		)
	}
}

func buildObjectName(consultationID, fileName string) string {
	extension := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("consultations/%s/%s%s", consultationID, uuid.NewString(), extension)
}

type consultationCreatedEvent struct {
	ConsultationID string `json:"consultationId"`
	PatientID      string `json:"patientId"`
	MedicoID       string `json:"medicoId"`
	ImageCount     int    `json:"imageCount"`
}

type diagnosisConfirmedEvent struct {
	Level          string `json:"level"`
	ConsultationID string `json:"consultationId"`
	ImageID        string `json:"imageId,omitempty"`
	FinalDiagnosis string `json:"finalDiagnosis"`
}
