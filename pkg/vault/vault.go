// Package vault encrypts sensitive payment-method fields with AES-GCM
// and produces masked card numbers for display.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"vehicle-rental/internal/apperr"
)

const (
	keyLength   = 32
	nonceLength = 12
)

// Vault performs authenticated symmetric encryption with a single
// injected key. All methods are stateless and safe for concurrent use.
type Vault struct {
	aead cipher.AEAD
}

// New builds a Vault from a 32-byte secret key (AES-256).
func New(key []byte) (*Vault, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("vault key must be %d bytes, got %d", keyLength, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return &Vault{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce. The nonce is
// prepended to the ciphertext and the whole blob is base64-encoded, so
// two encryptions of the same input never produce the same output.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: nonce generation failed", apperr.ErrCrypto)
	}

	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Every failure mode (bad base64, truncated
// input, authentication failure) returns the same generic error so the
// caller cannot distinguish corruption from a wrong key.
func (v *Vault) Decrypt(encoded string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperr.ErrCrypto
	}

	if len(blob) < nonceLength {
		return "", apperr.ErrCrypto
	}

	nonce, ciphertext := blob[:nonceLength], blob[nonceLength:]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", apperr.ErrCrypto
	}

	return string(plaintext), nil
}

// MaskCard returns the display form of a card number showing only the
// last four digits. Inputs shorter than four characters collapse to an
// all-masked placeholder.
func MaskCard(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}

	lastFour := cardNumber[len(cardNumber)-4:]
	return strings.Repeat("**** ", 3) + lastFour
}
