package request

import "time"

type CreateRentalRequest struct {
	VehicleID     string    `json:"vehicle_id" validate:"required,uuid"`
	StartDateTime time.Time `json:"start_date_time" validate:"required"`
	EndDateTime   time.Time `json:"end_date_time" validate:"required"`
	// An upfront payment reference skips the pending step entirely.
	PaymentID *string `json:"payment_id,omitempty" validate:"omitempty,max=64"`
}

type ConfirmRentalRequest struct {
	PaymentID string `json:"payment_id" validate:"required,min=1,max=64"`
}

type ExtendRentalRequest struct {
	NewEndDateTime time.Time `json:"new_end_date_time" validate:"required"`
	PaymentID      *string   `json:"payment_id,omitempty" validate:"omitempty,max=64"`
}

// CheckAvailabilityRequest asks whether a window is bookable without
// creating anything.
type CheckAvailabilityRequest struct {
	VehicleID     string    `json:"vehicle_id" validate:"required,uuid"`
	StartDateTime time.Time `json:"start_date_time" validate:"required"`
	EndDateTime   time.Time `json:"end_date_time" validate:"required"`
}
