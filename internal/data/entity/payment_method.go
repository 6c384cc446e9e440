package entity

import (
	"github.com/google/uuid"
)

type PaymentMethodType string

const (
	PaymentMethodCreditCard PaymentMethodType = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethodType = "DEBIT_CARD"
	PaymentMethodPayPal     PaymentMethodType = "PAYPAL"
)

// PaymentMethod stores card fields only in encrypted form; the masked
// number is the only card representation ever returned to clients.
type PaymentMethod struct {
	Base
	UserID              uuid.UUID         `db:"user_id"`
	Type                PaymentMethodType `db:"type"`
	Provider            string            `db:"provider"`
	Alias               string            `db:"alias"`
	EncryptedCardNumber *string           `db:"encrypted_card_number"`
	EncryptedExpiryDate *string           `db:"encrypted_expiry_date"`
	MaskedCardNumber    *string           `db:"masked_card_number"`
	PaypalEmail         *string           `db:"paypal_email"`
	IsDefault           bool              `db:"is_default"`
}

func (pm *PaymentMethod) IsCard() bool {
	return pm.Type == PaymentMethodCreditCard || pm.Type == PaymentMethodDebitCard
}
