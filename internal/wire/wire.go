package wire

import (
	"net/http"

	"vehicle-rental/internal/adaptor"
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/internal/usecase"
	"vehicle-rental/pkg/middleware"
	"vehicle-rental/pkg/utils"
	"vehicle-rental/pkg/vault"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, v *vault.Vault, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, v, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireVehicle(r, handler.Vehicle, handler.Rental, repo, logger)
	wireRental(r, handler.Rental, handler.Payment, handler.Review, repo, logger)
	wirePayment(r, handler.Payment, handler.PaymentMethod, repo, logger)
	wireReview(r, handler.Review, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
