package routers

import (
	"ptmd-service/internal/app/delivery/http/controllers"
	"ptmd-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(r chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	r.Post("/register", authController.Register)
	r.Post("/login", authController.Login)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/logout", authController.Logout)
		r.Put("/change-password", authController.ChangePassword)
	})
}
