// Package base62 encodes unsigned integers using the alphabet 0-9, A-Z, a-z.
// Unlike base64 it contains no characters that need escaping in a URL path,
// which makes it the natural encoding for short codes.
package base62

import (
	"errors"
	"strings"
)

// Alphabet is the base62 character set. Digit values are 0-9 for '0'-'9',
// 10-35 for 'A'-'Z' and 36-61 for 'a'-'z'. The order is load-bearing: codes
// derived from record identifiers must stay bit-compatible with persisted
// data, so it must never change.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = 62

// ErrInvalidCharacter is returned by Decode for input outside the alphabet.
var ErrInvalidCharacter = errors.New("invalid character in base62 string")

var charValues [256]int16

func init() {
	for i := range charValues {
		charValues[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		charValues[Alphabet[i]] = int16(i)
	}
}

// Encode converts num to its base62 representation. Zero encodes to "0".
func Encode(num uint64) string {
	if num == 0 {
		return "0"
	}

	buf := make([]byte, 0, 11) // 11 chars cover the full uint64 range
	for num > 0 {
		buf = append(buf, Alphabet[num%base])
		num /= base
	}

	// Digits were produced least-significant first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// Decode converts a base62 string back to the integer it encodes.
// The empty string decodes to zero.
func Decode(s string) (uint64, error) {
	var result uint64
	for i := 0; i < len(s); i++ {
		v := charValues[s[i]]
		if v < 0 {
			return 0, ErrInvalidCharacter
		}
		result = result*base + uint64(v)
	}
	return result, nil
}

// IsValid reports whether s consists only of base62 alphabet characters.
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		if charValues[s[i]] < 0 {
			return false
		}
	}
	return true
}

// Pad left-pads encoded with the alphabet's zero symbol up to targetLen.
func Pad(encoded string, targetLen int) string {
	if len(encoded) >= targetLen {
		return encoded
	}
	return strings.Repeat("0", targetLen-len(encoded)) + encoded
}
