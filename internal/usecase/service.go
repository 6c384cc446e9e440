package usecase

import (
	"vehicle-rental/internal/data/repository"
	"vehicle-rental/pkg/utils"
	"vehicle-rental/pkg/vault"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	User          UserService
	Vehicle       VehicleService
	Rental        RentalService
	Payment       PaymentService
	PaymentMethod PaymentMethodService
	Review        ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, v *vault.Vault, log *zap.Logger) *Service {
	return &Service{
		Auth:          NewAuthService(repo, config, log),
		User:          NewUserService(repo, log),
		Vehicle:       NewVehicleService(repo, log),
		Rental:        NewRentalService(repo, log),
		Payment:       NewPaymentService(repo, config, log),
		PaymentMethod: NewPaymentMethodService(repo, v, log),
		Review:        NewReviewService(repo, log),
	}
}
