package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentType string

const (
	PaymentTypeRental          PaymentType = "RENTAL"
	PaymentTypeExtension       PaymentType = "EXTENSION"
	PaymentTypeSecurityDeposit PaymentType = "SECURITY_DEPOSIT"
	PaymentTypeRefund          PaymentType = "REFUND"
)

// Payment is one settlement attempt. Immutable after COMPLETED except
// for the status flip to REFUNDED.
type Payment struct {
	BaseSimple
	ExternalID      string          `db:"external_id"`
	RentalID        uuid.UUID       `db:"rental_id"`
	PayerID         uuid.UUID       `db:"payer_id"`
	PaymentMethodID uuid.UUID       `db:"payment_method_id"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	Status          PaymentStatus   `db:"status"`
	Type            PaymentType     `db:"type"`
	PaymentDate     time.Time       `db:"payment_date"`
	FailureReason   *string         `db:"failure_reason"`
}
