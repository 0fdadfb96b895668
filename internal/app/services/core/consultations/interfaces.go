package consultations

import (
	"context"
	"io"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/dto/responses"
)

type ConsultationRepository interface {
	CreateConsultation(ctx context.Context, consultationModel *models.Consultation) (consultationID string, err error)
	FindByID(ctx context.Context, consultationID string) (*models.Consultation, error)
	FindByIDs(ctx context.Context, consultationIDs []string) (map[string]*models.Consultation, error)
	// FindConsultations filters by owning doctor (empty medicoID means any)
	// and by patient (nil means any; an empty non-nil slice matches nothing).
	FindConsultations(ctx context.Context, medicoID string, patientIDs []string) ([]models.Consultation, error)
	ConfirmDiagnosis(ctx context.Context, consultationID string, diagnosis models.Diagnosis) error
	CountConsultations(ctx context.Context) (int64, error)
}

type ImageRepository interface {
	CreateImage(ctx context.Context, imageModel *models.Image) (imageID string, err error)
	FindByID(ctx context.Context, imageID string) (*models.Image, error)
	FindByConsultationID(ctx context.Context, consultationID string) ([]models.Image, error)
	FindByConsultationIDs(ctx context.Context, consultationIDs []string) (map[string][]models.Image, error)
	ConfirmDiagnosis(ctx context.Context, imageID string, diagnosis models.Diagnosis) error
	FindConfirmedImages(ctx context.Context) ([]models.Image, error)
	CountImages(ctx context.Context) (int64, error)
}

type ConsultationUsecase interface {
	CreateConsultation(ctx context.Context, session *models.Session, request *requests.CreateConsultation) (*responses.Consultation, error)
	ListConsultations(ctx context.Context, session *models.Session, filters *requests.ListConsultations) ([]responses.Consultation, error)
	GetConsultationByID(ctx context.Context, session *models.Session, consultationID string) (*responses.Consultation, error)
	ConfirmConsultationDiagnosis(ctx context.Context, session *models.Session, consultationID string, request *requests.ConfirmDiagnosis) (*responses.Consultation, error)
	ConfirmImageDiagnosis(ctx context.Context, session *models.Session, imageID string, request *requests.ConfirmDiagnosis) (*responses.Image, error)
	GetImageFile(ctx context.Context, session *models.Session, imageID string) (io.ReadCloser, *models.Image, error)
}
