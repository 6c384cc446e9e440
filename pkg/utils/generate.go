package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReceiptNumber returns a receipt number of the form
// YYYYMMDD-NNNNN, where NNNNN is a random 5-digit suffix. Uniqueness is
// enforced by the receipts table; callers retry on collision.
func GenerateReceiptNumber(issueDate time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("generate receipt suffix: %w", err)
	}
	return fmt.Sprintf("%s-%05d", issueDate.Format("20060102"), n.Int64()), nil
}

// GenerateExternalPaymentID mimics a gateway transaction reference.
func GenerateExternalPaymentID(now time.Time) string {
	return fmt.Sprintf("SIM-%d", now.UnixMilli())
}
