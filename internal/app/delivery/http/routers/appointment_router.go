package routers

import (
	"mawaid-service/internal/app/delivery/http/middlewares"
	"mawaid-service/internal/app/services/core/appointments"
	"mawaid-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *appointments.AppointmentController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/mine", appointmentController.FindMine)
		r.Get("/{appointmentID}", appointmentController.FindByID)
		r.Post("/{appointmentID}/accept", appointmentController.Accept)
		r.Post("/{appointmentID}/rating", appointmentController.SubmitRating)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRoles(constvars.RoleTypeAdmin, constvars.RoleTypeSuperAdmin))

			r.Get("/", appointmentController.FindAll)
			r.Post("/", appointmentController.Create)
			r.Put("/{appointmentID}", appointmentController.Update)
			r.Delete("/{appointmentID}", appointmentController.Delete)
			r.Patch("/{appointmentID}/status", appointmentController.ChangeStatus)
		})
	})
}
