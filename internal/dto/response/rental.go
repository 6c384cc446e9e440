package response

import (
	"time"

	"vehicle-rental/internal/data/entity"

	"github.com/shopspring/decimal"
)

type RentalResponse struct {
	ID                   string           `json:"id"`
	VehicleID            string           `json:"vehicle_id"`
	RenterID             string           `json:"renter_id"`
	StartDateTime        time.Time        `json:"start_date_time"`
	EndDateTime          time.Time        `json:"end_date_time"`
	ExtendedUntil        *time.Time       `json:"extended_until,omitempty"`
	ActualReturnDateTime *time.Time       `json:"actual_return_date_time,omitempty"`
	TotalPrice           decimal.Decimal  `json:"total_price"`
	SecurityDeposit      decimal.Decimal  `json:"security_deposit"`
	DiscountAmount       *decimal.Decimal `json:"discount_amount,omitempty"`
	LateReturnFee        *decimal.Decimal `json:"late_return_fee,omitempty"`
	Status               string           `json:"status"`
	Paid                 bool             `json:"paid"`
	DiscountApplied      bool             `json:"discount_applied"`
	LateReturn           bool             `json:"late_return"`
	CreatedAt            time.Time        `json:"created_at"`
}

func ToRentalResponse(r *entity.Rental) *RentalResponse {
	return &RentalResponse{
		ID:                   r.ID.String(),
		VehicleID:            r.VehicleID.String(),
		RenterID:             r.RenterID.String(),
		StartDateTime:        r.StartDateTime,
		EndDateTime:          r.EndDateTime,
		ExtendedUntil:        r.ExtendedUntil,
		ActualReturnDateTime: r.ActualReturnDateTime,
		TotalPrice:           r.TotalPrice,
		SecurityDeposit:      r.SecurityDeposit,
		DiscountAmount:       r.DiscountAmount,
		LateReturnFee:        r.LateReturnFee,
		Status:               string(r.Status),
		Paid:                 r.Paid,
		DiscountApplied:      r.DiscountApplied,
		LateReturn:           r.LateReturn,
		CreatedAt:            r.CreatedAt,
	}
}

func ToRentalResponses(rentals []*entity.Rental) []*RentalResponse {
	responses := make([]*RentalResponse, len(rentals))
	for i, r := range rentals {
		responses[i] = ToRentalResponse(r)
	}
	return responses
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ReturnResponse reports the settled rental plus whether the renter
// crossed the report threshold and was banned as part of the return.
type ReturnResponse struct {
	Rental       *RentalResponse `json:"rental"`
	RenterBanned bool            `json:"renter_banned"`
}
