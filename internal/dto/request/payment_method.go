package request

// CreatePaymentMethodRequest carries raw card data over TLS exactly
// once; it is encrypted before it touches storage and never logged.
type CreatePaymentMethodRequest struct {
	Type        string  `json:"type" validate:"required,oneof=CREDIT_CARD DEBIT_CARD PAYPAL"`
	Provider    string  `json:"provider" validate:"required,min=2,max=30"`
	Alias       string  `json:"alias" validate:"required,min=1,max=50"`
	CardNumber  *string `json:"card_number,omitempty" validate:"omitempty,min=12,max=19"`
	ExpiryDate  *string `json:"expiry_date,omitempty" validate:"omitempty,len=5"`
	PaypalEmail *string `json:"paypal_email,omitempty" validate:"omitempty,email"`
	IsDefault   bool    `json:"is_default"`
}

type UpdatePaymentMethodRequest struct {
	Provider string `json:"provider" validate:"required,min=2,max=30"`
	Alias    string `json:"alias" validate:"required,min=1,max=50"`
}
