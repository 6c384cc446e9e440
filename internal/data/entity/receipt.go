package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReceiptStatus string

const (
	ReceiptStatusIssued    ReceiptStatus = "ISSUED"
	ReceiptStatusCancelled ReceiptStatus = "CANCELLED"
	ReceiptStatusRefunded  ReceiptStatus = "REFUNDED"
)

// Receipt is the immutable financial snapshot taken when a payment
// settles. Exactly one receipt exists per completed payment.
type Receipt struct {
	BaseSimple
	ReceiptNumber string          `db:"receipt_number"`
	PaymentID     uuid.UUID       `db:"payment_id"`
	RentalID      uuid.UUID       `db:"rental_id"`
	RenterID      uuid.UUID       `db:"renter_id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	VehicleID     uuid.UUID       `db:"vehicle_id"`
	IssueDate     time.Time       `db:"issue_date"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	RentalDays    int             `db:"rental_days"`
	PricePerDay   decimal.Decimal `db:"price_per_day"`
	Currency      string          `db:"currency"`
	Status        ReceiptStatus   `db:"status"`
}
