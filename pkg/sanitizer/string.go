// Package sanitizer normalizes free-text fields coming in on booking
// payloads (company and person names) before validation and persistence.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace, collapses internal
// whitespace runs to single spaces and drops control characters.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// NormalizeName cleans person and company names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizePhone strips spaces and common separators from a phone number,
// keeping a leading plus.
func NormalizePhone(tlf string) string {
	tlf = strings.TrimSpace(tlf)
	var result strings.Builder
	for i, r := range tlf {
		switch {
		case r >= '0' && r <= '9':
			result.WriteRune(r)
		case r == '+' && i == 0:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// NormalizeEmail lowercases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
