package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRental(r *chi.Mux, h *adaptor.RentalHandler, payments *adaptor.PaymentHandler, reviews *adaptor.ReviewHandler, repo *repository.Repository, logger *zap.Logger) {
	// Availability checks need no account
	r.Post("/api/rentals/availability", h.CheckAvailability)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))

		r.Post("/api/rentals", h.Create)
		r.Get("/api/rentals", h.ListMine)
		r.Get("/api/rentals/owned", h.ListForOwner)
		r.Get("/api/rentals/{id}", h.GetByID)

		r.Post("/api/rentals/{id}/confirm", h.Confirm)
		r.Post("/api/rentals/{id}/start", h.Start)
		r.Post("/api/rentals/{id}/extend", h.Extend)
		r.Post("/api/rentals/{id}/return", h.Return)
		r.Post("/api/rentals/{id}/cancel", h.Cancel)
		r.Post("/api/rentals/{id}/report", h.Report)

		r.Get("/api/rentals/{id}/payments", payments.ListByRental)
		r.Get("/api/rentals/{id}/reviews", reviews.ListByRental)
	})
}
