package consultations

import (
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/dto/responses"
)

func buildPatientResponse(patient *models.Patient) *responses.Patient {
	if patient == nil {
		return nil
	}
	return &responses.Patient{
		ID:             patient.ID,
		Nome:           patient.Nome,
		CPF:            patient.CPF,
		Sexo:           string(patient.Sexo),
		DataNascimento: patient.DataNascimento,
	}
}

func buildImageResponse(image *models.Image) responses.Image {
	return responses.Image{
		ID:                  image.ID,
		FileName:            image.FileName,
		ObjectName:          image.ObjectName,
		FileSize:            image.FileSize,
		ContentType:         image.ContentType,
		AiDiagnosis:         image.AiDiagnosis,
		Confidence:          image.Confidence,
		MultClass:           image.MultClass,
		MultClassConfidence: image.MultClassConfidence,
		FinalDiagnosis:      diagnosisString(image.FinalDiagnosis),
		Confirmed:           image.Confirmed,
		CreatedAt:           image.CreatedAt,
	}
}

func buildConsultationResponse(consultation *models.Consultation, patient *models.Patient, images []models.Image) *responses.Consultation {
	imageResponses := make([]responses.Image, 0, len(images))
	for i := range images {
		imageResponses = append(imageResponses, buildImageResponse(&images[i]))
	}
	return &responses.Consultation{
		ID:                  consultation.ID,
		Patient:             buildPatientResponse(patient),
		Images:              imageResponses,
		AiDiagnosis:         consultation.AiDiagnosis,
		Confidence:          consultation.Confidence,
		MultClass:           consultation.MultClass,
		MultClassConfidence: consultation.MultClassConfidence,
		FinalDiagnosis:      diagnosisString(consultation.FinalDiagnosis),
		Confirmed:           consultation.Confirmed,
		CreatedAt:           consultation.CreatedAt,
	}
}

func diagnosisString(diagnosis *models.Diagnosis) *string {
	if diagnosis == nil {
		return nil
	}
	value := diagnosis.String()
	return &value
}
