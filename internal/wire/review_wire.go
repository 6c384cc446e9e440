package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r *chi.Mux, h *adaptor.ReviewHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))

		r.Post("/api/reviews", h.Create)
	})
}
