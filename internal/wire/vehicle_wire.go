package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/entity"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVehicle(r *chi.Mux, h *adaptor.VehicleHandler, rentals *adaptor.RentalHandler, repo *repository.Repository, logger *zap.Logger) {
	// Browsing the fleet is public
	r.Get("/api/vehicles", h.ListAvailable)
	r.Get("/api/vehicles/{id}", h.GetByID)

	// Fleet management is owner-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))
		r.Use(middleware.RequireRole(logger, entity.RoleOwner, entity.RoleAdmin))

		r.Post("/api/vehicles", h.Create)
		r.Get("/api/vehicles/mine", h.ListMine)
		r.Put("/api/vehicles/{id}", h.Update)
		r.Delete("/api/vehicles/{id}", h.Delete)
		r.Get("/api/vehicles/{id}/rentals", rentals.ListByVehicle)
	})
}
