package routers

import (
	"ptmd-service/internal/app/delivery/http/controllers"
	"ptmd-service/internal/app/delivery/http/middlewares"
	"ptmd-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(r chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController) {
	r.Use(middlewares.Authenticate)
	r.Use(middlewares.RequireRoles(models.RoleAdmin))

	r.Get("/dashboard", adminController.Dashboard)
	r.Get("/backup", adminController.Backup)
}
