package admin

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/app/services/core/consultations"
	"ptmd-service/internal/app/services/core/patients"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/responses"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type adminUsecase struct {
	ConsultationRepository consultations.ConsultationRepository
	ImageRepository        consultations.ImageRepository
	PatientRepository      patients.PatientRepository
	Storage                contracts.Storage
	Log                    *zap.Logger
}

func NewAdminUsecase(
	consultationRepository consultations.ConsultationRepository,
	imageRepository consultations.ImageRepository,
	patientRepository patients.PatientRepository,
	storage contracts.Storage,
	logger *zap.Logger,
) AdminUsecase {
	return &adminUsecase{
		ConsultationRepository: consultationRepository,
		ImageRepository:        imageRepository,
		PatientRepository:      patientRepository,
		Storage:                storage,
		Log:                    logger,
	}
}

func (u *adminUsecase) GetDashboard(ctx context.Context) (*responses.Dashboard, error) {
	totalImages, err := u.ImageRepository.CountImages(ctx)
	if err != nil {
		return nil, err
	}
	totalConsultations, err := u.ConsultationRepository.CountConsultations(ctx)
	if err != nil {
		return nil, err
	}
	totalPatients, err := u.PatientRepository.CountPatients(ctx)
	if err != nil {
		return nil, err
	}

	return &responses.Dashboard{
		TotalImages:        totalImages,
		TotalConsultations: totalConsultations,
		TotalPatients:      totalPatients,
	}, nil
}

func (u *adminUsecase) BuildBackup(ctx context.Context) ([]byte, error) {
	images, err := u.ImageRepository.FindConfirmedImages(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, exceptions.ErrBackupNoConfirmedImages(fmt.Errorf("no confirmed images to export"))
	}

	consultationIDSet := make(map[string]struct{}, len(images))
	for _, image := range images {
		consultationIDSet[image.ConsultationID] = struct{}{}
	}
	consultationIDs := make([]string, 0, len(consultationIDSet))
	for consultationID := range consultationIDSet {
		consultationIDs = append(consultationIDs, consultationID)
	}
	consultationsByID, err := u.ConsultationRepository.FindByIDs(ctx, consultationIDs)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	archive := zip.NewWriter(&buffer)

	csvRecords := [][]string{strings.Split(constvars.BackupCSVHeader, ",")}

	exported := 0
	for i := range images {
		image := &images[i]
		patientID := ""
		if consultation, ok := consultationsByID[image.ConsultationID]; ok {
			patientID = consultation.PatientID
		}

		// A blob that went missing since confirmation is skipped rather than
		// failing the whole export.
		reader, err := u.Storage.GetObject(ctx, image.ObjectName)
		if err != nil {
			u.Log.Warn("skipping image with unreadable blob",
				zap.String(constvars.LoggingImageIDKey, image.ID),
				zap.String(constvars.LoggingObjectNameKey, image.ObjectName),
				zap.Error(err),
			)
			continue
		}

		entryName, err := u.writeImageEntry(archive, image, patientID, reader)
		reader.Close()
		if err != nil {
			return nil, err
		}
		exported++

		modelPrediction := ""
		if image.AiDiagnosis != nil {
			modelPrediction = *image.AiDiagnosis
		}
		finalDiagnosis := ""
		if image.FinalDiagnosis != nil {
			finalDiagnosis = image.FinalDiagnosis.String()
		}
		csvRecords = append(csvRecords, []string{image.ID, patientID, modelPrediction, finalDiagnosis})

		u.Log.Debug("added image to backup archive",
			zap.String(constvars.LoggingImageIDKey, image.ID),
			zap.String("entry_name", entryName),
		)
	}

	csvEntry, err := archive.Create(constvars.BackupCSVName)
	if err != nil {
		return nil, exceptions.ErrBackupArchive(err)
	}
	csvWriter := csv.NewWriter(csvEntry)
	if err := csvWriter.WriteAll(csvRecords); err != nil {
		return nil, exceptions.ErrBackupArchive(err)
	}

	if err := archive.Close(); err != nil {
		return nil, exceptions.ErrBackupArchive(err)
	}

	u.Log.Info("backup archive built",
		zap.Int("image_count", exported),
		zap.Int("size_bytes", buffer.Len()),
	)
	return buffer.Bytes(), nil
}

func (u *adminUsecase) writeImageEntry(archive *zip.Writer, image *models.Image, patientID string, reader io.Reader) (string, error) {
	finalDiagnosis := ""
	if image.FinalDiagnosis != nil {
		finalDiagnosis = image.FinalDiagnosis.String()
	}
	entryName := fmt.Sprintf("%s/%s_%s_%s%s",
		constvars.BackupDatasetDir,
		image.ID,
		patientID,
		utils.SanitizeFileName(finalDiagnosis),
		strings.ToLower(filepath.Ext(image.ObjectName)),
	)

	entry, err := archive.Create(entryName)
	if err != nil {
		return "", exceptions.ErrBackupArchive(err)
	}
	if _, err := io.Copy(entry, reader); err != nil {
		return "", exceptions.ErrBackupArchive(err)
	}
	return entryName, nil
}
