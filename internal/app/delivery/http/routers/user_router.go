package routers

import (
	"mawaid-service/internal/app/delivery/http/middlewares"
	"mawaid-service/internal/app/services/core/users"
	"mawaid-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *users.UserController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/me", userController.GetProfile)
		r.Put("/me", userController.UpdateProfile)
		r.Delete("/me", userController.Delete)

		r.With(middlewares.RequireRoles(constvars.RoleTypeAdmin, constvars.RoleTypeSuperAdmin)).
			Get("/", userController.FindAll)
	})
}
