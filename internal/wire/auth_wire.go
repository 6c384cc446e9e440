package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r *chi.Mux, h *adaptor.AuthHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))
		r.Post("/api/logout", h.Logout)
	})
}
