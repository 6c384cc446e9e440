package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r *chi.Mux, h *adaptor.UserHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))

		r.Get("/api/profile", h.GetProfile)
		r.Put("/api/profile", h.UpdateProfile)
		r.Put("/api/profile/documents", h.UploadDocuments)

		r.Get("/api/notifications", h.ListNotifications)
		r.Get("/api/notifications/unread", h.UnreadCount)
		r.Post("/api/notifications/{id}/read", h.MarkNotificationRead)
	})

	// Admin-only user management
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))
		r.Use(middleware.Admin(logger))

		r.Get("/api/admin/users", h.ListUsers)
		r.Post("/api/admin/users/{id}/ban", h.BanUser)
		r.Post("/api/admin/users/{id}/unban", h.UnbanUser)
	})
}
