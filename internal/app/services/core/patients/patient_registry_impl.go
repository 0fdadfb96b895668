package patients

import (
	"context"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type patientRegistry struct {
	PatientRepository PatientRepository
	Log               *zap.Logger
}

func NewPatientRegistry(patientRepository PatientRepository, logger *zap.Logger) PatientRegistry {
	return &patientRegistry{
		PatientRepository: patientRepository,
		Log:               logger,
	}
}

func (u *patientRegistry) ResolvePatient(ctx context.Context, request *requests.CreatePatient) (*models.Patient, error) {
	utils.SanitizeCreatePatientRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	dataNascimento, err := utils.ParseOptionalDate(request.DataNascimento)
	if err != nil {
		return nil, err
	}

	patient, err := u.PatientRepository.UpsertByCPF(ctx, &models.Patient{
		Nome:           request.Nome,
		CPF:            request.CPF,
		Sexo:           models.Sexo(request.Sexo),
		DataNascimento: dataNascimento,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, err
	}

	u.Log.Debug("patient resolved",
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)
	return patient, nil
}
