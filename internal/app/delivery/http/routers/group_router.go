package routers

import (
	"mawaid-service/internal/app/delivery/http/middlewares"
	"mawaid-service/internal/app/services/core/groups"
	"mawaid-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachGroupRoutes(router chi.Router, middlewares *middlewares.Middlewares, groupController *groups.GroupController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.Get("/mine", groupController.FindMine)
		r.Get("/{groupID}/admin", groupController.GetAdmin)
		r.Get("/{groupID}/members", groupController.GetMembers)
		r.Get("/{groupID}/appointments", groupController.GetAppointments)

		// membership and handover checks beyond the role gate live in the
		// usecase, which knows the group's own admin
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRoles(constvars.RoleTypeAdmin, constvars.RoleTypeSuperAdmin))

			r.Put("/{groupID}", groupController.Update)
			r.Put("/{groupID}/admin", groupController.ReassignAdmin)
			r.Post("/{groupID}/members", groupController.AddMembers)
			r.Delete("/{groupID}/members", groupController.RemoveMembers)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRoles(constvars.RoleTypeSuperAdmin))

			r.Post("/", groupController.Create)
			r.Delete("/{groupID}", groupController.Delete)
		})
	})
}
