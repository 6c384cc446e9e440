package adaptor

import (
	"vehicle-rental/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Vehicle       *VehicleHandler
	Rental        *RentalHandler
	Payment       *PaymentHandler
	PaymentMethod *PaymentMethodHandler
	Review        *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		User:          NewUserHandler(service.User, log),
		Vehicle:       NewVehicleHandler(service.Vehicle, log),
		Rental:        NewRentalHandler(service.Rental, log),
		Payment:       NewPaymentHandler(service.Payment, log),
		PaymentMethod: NewPaymentMethodHandler(service.PaymentMethod, log),
		Review:        NewReviewHandler(service.Review, log),
	}
}
