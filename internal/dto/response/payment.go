package response

import (
	"time"

	"vehicle-rental/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID              string          `json:"id"`
	ExternalID      string          `json:"external_id"`
	RentalID        string          `json:"rental_id"`
	PayerID         string          `json:"payer_id"`
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	PaymentDate     time.Time       `json:"payment_date"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
}

func ToPaymentResponse(p *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID.String(),
		ExternalID:      p.ExternalID,
		RentalID:        p.RentalID.String(),
		PayerID:         p.PayerID.String(),
		PaymentMethodID: p.PaymentMethodID.String(),
		Amount:          p.Amount,
		Currency:        p.Currency,
		Status:          string(p.Status),
		Type:            string(p.Type),
		PaymentDate:     p.PaymentDate,
		FailureReason:   p.FailureReason,
	}
}

func ToPaymentResponses(payments []*entity.Payment) []*PaymentResponse {
	responses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPaymentResponse(p)
	}
	return responses
}

type ReceiptResponse struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	PaymentID     string          `json:"payment_id"`
	RentalID      string          `json:"rental_id"`
	IssueDate     time.Time       `json:"issue_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	RentalDays    int             `json:"rental_days"`
	PricePerDay   decimal.Decimal `json:"price_per_day"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
}

func ToReceiptResponse(rc *entity.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:            rc.ID.String(),
		ReceiptNumber: rc.ReceiptNumber,
		PaymentID:     rc.PaymentID.String(),
		RentalID:      rc.RentalID.String(),
		IssueDate:     rc.IssueDate,
		Subtotal:      rc.Subtotal,
		TaxAmount:     rc.TaxAmount,
		TotalAmount:   rc.TotalAmount,
		RentalDays:    rc.RentalDays,
		PricePerDay:   rc.PricePerDay,
		Currency:      rc.Currency,
		Status:        string(rc.Status),
	}
}

func ToReceiptResponses(receipts []*entity.Receipt) []*ReceiptResponse {
	responses := make([]*ReceiptResponse, len(receipts))
	for i, rc := range receipts {
		responses[i] = ToReceiptResponse(rc)
	}
	return responses
}
