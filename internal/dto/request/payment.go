package request

type ProcessPaymentRequest struct {
	RentalID        string `json:"rental_id" validate:"required,uuid"`
	PaymentMethodID string `json:"payment_method_id" validate:"required,uuid"`
	Type            string `json:"type" validate:"required,oneof=RENTAL EXTENSION SECURITY_DEPOSIT"`
}

type RefundPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required,uuid"`
	// Amount is the partial refund figure; omitted means refund in full.
	Amount *string `json:"amount,omitempty" validate:"omitempty"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
