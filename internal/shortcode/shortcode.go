// Package shortcode derives short codes from record identifiers and
// validates caller-supplied ones.
package shortcode

import (
	"errors"

	"Linklet-Backend/pkg/base62"
)

const (
	// MinLength is the padded length of derived codes.
	MinLength = 6

	// Custom codes must stay within the bounds the public API accepts.
	MinCustomLength = 4
	MaxCustomLength = 10

	// low48Mask keeps the 12 trailing hex digits of a record identifier,
	// the time+counter portion with all the per-record entropy.
	low48Mask = (1 << 48) - 1
)

var (
	ErrBadLength   = errors.New("custom code must be between 4 and 10 characters")
	ErrBadAlphabet = errors.New("custom code must contain only 0-9, A-Z, a-z")
)

// Derive produces the short code for a record identifier: the low 48 bits
// base62-encoded and left-padded to 6 characters. Deterministic and pure;
// identical identifiers always yield identical codes. The exact derivation
// is part of the persisted-data contract and must not change.
func Derive(recordID int64) string {
	suffix := uint64(recordID) & low48Mask
	return base62.Pad(base62.Encode(suffix), MinLength)
}

// ValidateCustom checks a caller-supplied code against the public
// constraints: 4-10 characters over the base62 alphabet.
func ValidateCustom(code string) error {
	if len(code) < MinCustomLength || len(code) > MaxCustomLength {
		return ErrBadLength
	}
	if !base62.IsValid(code) {
		return ErrBadAlphabet
	}
	return nil
}
