package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalStatus string

// Status strings match the wire/storage format of the upstream mobile
// clients; do not change them.
const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusConfirmed RentalStatus = "CONFIRMED"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

type Rental struct {
	Base
	VehicleID            uuid.UUID        `db:"vehicle_id"`
	RenterID             uuid.UUID        `db:"renter_id"`
	StartDateTime        time.Time        `db:"start_date_time"`
	EndDateTime          time.Time        `db:"end_date_time"`
	ExtendedUntil        *time.Time       `db:"extended_until"`
	ActualReturnDateTime *time.Time       `db:"actual_return_date_time"`
	TotalPrice           decimal.Decimal  `db:"total_price"`
	SecurityDeposit      decimal.Decimal  `db:"security_deposit"`
	DiscountAmount       *decimal.Decimal `db:"discount_amount"`
	LateReturnFee        *decimal.Decimal `db:"late_return_fee"`
	Status               RentalStatus     `db:"status"`
	PaymentID            *string          `db:"payment_id"`
	Paid                 bool             `db:"paid"`
	DiscountApplied      bool             `db:"discount_applied"`
	LateReturn           bool             `db:"late_return"`
	RenterReported       bool             `db:"renter_reported"`
}

// EffectiveEnd is the reservation's end for calendar purposes:
// ExtendedUntil when the rental was extended, EndDateTime otherwise.
func (r *Rental) EffectiveEnd() time.Time {
	if r.ExtendedUntil != nil {
		return *r.ExtendedUntil
	}
	return r.EndDateTime
}

// IsCurrentlyActive reports whether now falls inside the rental window
// and the rental has been started. Extension is only allowed while this
// holds.
func (r *Rental) IsCurrentlyActive(now time.Time) bool {
	return r.Status == RentalStatusActive &&
		now.After(r.StartDateTime) && now.Before(r.EffectiveEnd())
}

// Occupies reports whether the rental blocks the vehicle's calendar.
// Only confirmed and active rentals count; pending requests and
// cancelled/completed rentals do not hold the window.
func (r *Rental) Occupies() bool {
	return r.Status == RentalStatusConfirmed || r.Status == RentalStatusActive
}
