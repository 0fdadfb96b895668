package controllers

import (
	"context"
	"fmt"
	"net/http"
	"ptmd-service/internal/app/services/core/admin"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type AdminController struct {
	Log          *zap.Logger
	AdminUsecase admin.AdminUsecase
}

func NewAdminController(logger *zap.Logger, adminUsecase admin.AdminUsecase) *AdminController {
	return &AdminController{
		Log:          logger,
		AdminUsecase: adminUsecase,
	}
}

func (ctrl *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdminUsecase.GetDashboard(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDashboardSuccessMessage, response)
}

// Backup streams the dataset export as a ZIP download.
func (ctrl *AdminController) Backup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	archive, err := ctrl.AdminUsecase.BuildBackup(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationZip)
	w.Header().Set(constvars.HeaderContentLength, strconv.Itoa(len(archive)))
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", constvars.BackupArchiveName))
	w.WriteHeader(constvars.StatusOK)
	w.Write(archive)
}
