// Package phone canonicalises Indian mobile numbers to 91XXXXXXXXXX.
package phone

import (
	"errors"
	"strings"
)

var ErrInvalid = errors.New("phone number must be 10 digits (or 12 with country code 91)")

// Normalize strips every non-digit, prefixes 91 to a 10 digit local number
// and accepts 12 digits that already start with 91.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "91") && len(digits) == 12:
		return digits, nil
	case len(digits) == 10:
		return "91" + digits, nil
	default:
		return "", ErrInvalid
	}
}
