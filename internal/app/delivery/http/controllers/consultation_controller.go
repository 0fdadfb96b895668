package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/delivery/http/middlewares"
	"ptmd-service/internal/app/services/core/consultations"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase consultations.ConsultationUsecase
	InternalConfig      *config.InternalConfig
}

func NewConsultationController(logger *zap.Logger, consultationUsecase consultations.ConsultationUsecase, internalConfig *config.InternalConfig) *ConsultationController {
	return &ConsultationController{
		Log:                 logger,
		ConsultationUsecase: consultationUsecase,
		InternalConfig:      internalConfig,
	}
}

// Create expects multipart/form-data: a "patient" part holding the patient
// JSON and one or more "images" file parts, whose order is preserved.
func (ctrl *ConsultationController) Create(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	maxMemory := ctrl.InternalConfig.App.RequestBodyLimitInMegabyte << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	request := new(requests.CreateConsultation)
	patientPayload := r.FormValue("patient")
	if err := json.Unmarshal([]byte(patientPayload), &request.Patient); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
			return
		}

		contentType := fileHeader.Header.Get(constvars.HeaderContentType)
		if contentType == "" {
			contentType = constvars.MIMEOctetStream
		}
		request.Images = append(request.Images, requests.ImageUpload{
			Content:     content,
			FileName:    fileHeader.Filename,
			ContentType: contentType,
		})
	}

	// Every image gets a classifier round trip, so the request deadline
	// scales with the image count.
	timeout := time.Duration((len(request.Images)+1)*ctrl.InternalConfig.Classifier.TimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.CreateConsultation(ctx, session, request)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateConsultationSuccessMessage, response)
}

func (ctrl *ConsultationController) List(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	filters := &requests.ListConsultations{
		Nome: r.URL.Query().Get(constvars.QueryParamNome),
		CPF:  r.URL.Query().Get(constvars.QueryParamCPF),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.ListConsultations(ctx, session, filters)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationsSuccessMessage, response)
}

func (ctrl *ConsultationController) GetByID(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	consultationID := chi.URLParam(r, constvars.URLParamConsultationID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.GetConsultationByID(ctx, session, consultationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConsultationSuccessMessage, response)
}

func (ctrl *ConsultationController) ConfirmConsultation(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	consultationID := chi.URLParam(r, constvars.URLParamConsultationID)

	request := new(requests.ConfirmDiagnosis)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.ConfirmConsultationDiagnosis(ctx, session, consultationID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmDiagnosisSuccessMessage, response)
}

func (ctrl *ConsultationController) ConfirmImage(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	imageID := chi.URLParam(r, constvars.URLParamImageID)

	request := new(requests.ConfirmDiagnosis)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsultationUsecase.ConfirmImageDiagnosis(ctx, session, imageID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConfirmDiagnosisSuccessMessage, response)
}

func (ctrl *ConsultationController) GetImageFile(w http.ResponseWriter, r *http.Request) {
	session, err := middlewares.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	imageID := chi.URLParam(r, constvars.URLParamImageID)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	reader, image, err := ctrl.ConsultationUsecase.GetImageFile(ctx, session, imageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer reader.Close()

	w.Header().Set(constvars.HeaderContentType, image.ContentType)
	w.Header().Set(constvars.HeaderContentLength, strconv.FormatInt(image.FileSize, 10))
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", image.FileName))
	w.WriteHeader(constvars.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		ctrl.Log.Warn("failed to stream image file",
			zap.String(constvars.LoggingImageIDKey, imageID),
			zap.Error(err),
		)
	}
}
