package wire

import (
	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(r *chi.Mux, h *adaptor.PaymentHandler, methods *adaptor.PaymentMethodHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, logger))

		r.Post("/api/payments", h.Process)
		r.Post("/api/payments/refund", h.Refund)
		r.Get("/api/payments", h.ListMine)
		r.Get("/api/payments/{id}", h.GetByID)
		r.Get("/api/payments/{id}/receipt", h.GetReceipt)
		r.Get("/api/receipts", h.ListReceipts)

		r.Post("/api/payment-methods", methods.Create)
		r.Get("/api/payment-methods", methods.List)
		r.Put("/api/payment-methods/{id}", methods.Update)
		r.Post("/api/payment-methods/{id}/default", methods.SetDefault)
		r.Delete("/api/payment-methods/{id}", methods.Delete)
	})
}
