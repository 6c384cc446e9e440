package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationRentalCreated    NotificationType = "RENTAL_CREATED"
	NotificationPaymentReceived  NotificationType = "PAYMENT_RECEIVED"
	NotificationVehicleReturned  NotificationType = "VEHICLE_RETURNED"
	NotificationReceiptGenerated NotificationType = "RECEIPT_GENERATED"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	ReadAt  *time.Time       `db:"read_at"`
}
