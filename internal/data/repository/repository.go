package repository

import (
	"vehicle-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	Vehicle       VehicleRepository
	Rental        RentalRepository
	PaymentMethod PaymentMethodRepository
	Payment       PaymentRepository
	Receipt       ReceiptRepository
	Review        ReviewRepository
	Notification  NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Vehicle:       NewVehicleRepository(db, log),
		Rental:        NewRentalRepository(db, log),
		PaymentMethod: NewPaymentMethodRepository(db, log),
		Payment:       NewPaymentRepository(db, log),
		Receipt:       NewReceiptRepository(db, log),
		Review:        NewReviewRepository(db, log),
		Notification:  NewNotificationRepository(db, log),
	}
}
