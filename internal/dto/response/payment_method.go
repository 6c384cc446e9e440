package response

import (
	"time"

	"vehicle-rental/internal/data/entity"
)

// PaymentMethodResponse never carries card data, only the mask.
type PaymentMethodResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Provider         string    `json:"provider"`
	Alias            string    `json:"alias"`
	MaskedCardNumber *string   `json:"masked_card_number,omitempty"`
	PaypalEmail      *string   `json:"paypal_email,omitempty"`
	IsDefault        bool      `json:"is_default"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToPaymentMethodResponse(pm *entity.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:               pm.ID.String(),
		Type:             string(pm.Type),
		Provider:         pm.Provider,
		Alias:            pm.Alias,
		MaskedCardNumber: pm.MaskedCardNumber,
		PaypalEmail:      pm.PaypalEmail,
		IsDefault:        pm.IsDefault,
		CreatedAt:        pm.CreatedAt,
	}
}

func ToPaymentMethodResponses(methods []*entity.PaymentMethod) []*PaymentMethodResponse {
	responses := make([]*PaymentMethodResponse, len(methods))
	for i, pm := range methods {
		responses[i] = ToPaymentMethodResponse(pm)
	}
	return responses
}
