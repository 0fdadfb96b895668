package patients

import (
	"context"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/dto/requests"
)

type PatientRepository interface {
	UpsertByCPF(ctx context.Context, patientModel *models.Patient) (*models.Patient, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByIDs(ctx context.Context, patientIDs []string) (map[string]*models.Patient, error)
	SearchPatients(ctx context.Context, nome, cpf string) ([]models.Patient, error)
	CountPatients(ctx context.Context) (int64, error)
}

// PatientRegistry deduplicates patients by CPF: resolving the same CPF twice
// always yields the same patient, even under concurrent requests. A later
// resolution refreshes nome and dataNascimento; cpf and sexo are immutable.
type PatientRegistry interface {
	ResolvePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error)
}
