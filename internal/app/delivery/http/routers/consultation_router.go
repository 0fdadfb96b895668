package routers

import (
	"fmt"
	"ptmd-service/internal/app/delivery/http/controllers"
	"ptmd-service/internal/app/delivery/http/middlewares"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(r chi.Router, middlewares *middlewares.Middlewares, consultationController *controllers.ConsultationController) {
	r.Use(middlewares.Authenticate)
	r.Use(middlewares.RequireRoles(models.RoleMedico, models.RoleAdmin))

	r.Post("/", consultationController.Create)
	r.Get("/", consultationController.List)

	r.Get(fmt.Sprintf("/{%s}", constvars.URLParamConsultationID), consultationController.GetByID)
	r.Put(fmt.Sprintf("/{%s}/confirm", constvars.URLParamConsultationID), consultationController.ConfirmConsultation)

	r.Put(fmt.Sprintf("/images/{%s}/confirm", constvars.URLParamImageID), consultationController.ConfirmImage)
	r.Get(fmt.Sprintf("/images/{%s}/file", constvars.URLParamImageID), consultationController.GetImageFile)
}
