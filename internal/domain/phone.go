package domain

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone canonicalizes a Kenyan mobile number for storage and for the
// STK push prompt. Accepted shapes, after stripping separators:
//
//	07XXXXXXXX / 01XXXXXXXX  (local, 10 digits)
//	2547XXXXXXXX / 2541XXXXXXXX  (international, 12 digits)
//
// Everything normalizes to the international form.
func NormalizePhone(raw string) (string, error) {
	d := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case len(d) == 12 && (strings.HasPrefix(d, "2547") || strings.HasPrefix(d, "2541")):
		return d, nil
	case len(d) == 10 && (strings.HasPrefix(d, "07") || strings.HasPrefix(d, "01")):
		return "254" + d[1:], nil
	}
	return "", ErrInvalidPhone
}

// ValidPhone reports whether NormalizePhone would accept the input.
func ValidPhone(raw string) bool {
	_, err := NormalizePhone(raw)
	return err == nil
}
