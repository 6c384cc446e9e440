// Package apperr defines the error categories services return so that
// handlers can map failures to HTTP status codes without string matching.
package apperr

import "errors"

var (
	// ErrValidation covers bad input: dates in the past, end before
	// start, malformed ids. Nothing was mutated.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers state conflicts: vehicle unavailable,
	// overlapping reservation, duplicate discount, concurrent update
	// lost. The caller must retry with different parameters.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned when the acting user is not allowed
	// to perform the operation on this entity ("not yours"), distinct
	// from ErrConflict ("not possible").
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPayment covers settlement failures: invalid payment method,
	// refund over the settled amount. The rental stays in its prior
	// state.
	ErrPayment = errors.New("payment error")

	// ErrCrypto is the single error for any vault failure. It is
	// deliberately generic: callers must not learn whether decryption
	// failed on corrupt input or a wrong key.
	ErrCrypto = errors.New("crypto error")
)
