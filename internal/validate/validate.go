// Package validate contains the input checks used by the conversation flows.
package validate

import (
	"regexp"
	"strings"
)

const atom = "[a-z0-9!#$%&'*+/=?^_`{|}~-]"

var (
	emailRe = regexp.MustCompile(
		`(?i)^` + atom + `+(\.` + atom + `+)*@(` +
			atom + `+(\.` + atom + `+)*|\[\d{1,3}(\.\d{1,3}){3}\])$`,
	)
	digitsRe = regexp.MustCompile(`^\d{1,15}$`)
)

// IsValidEmail reports whether s looks like local@domain or local@[ip].
// Blank input is invalid.
func IsValidEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return emailRe.MatchString(s)
}

// IsDigitsOnly reports whether phone is 1 to 15 ASCII digits.
func IsDigitsOnly(phone string) bool {
	return digitsRe.MatchString(phone)
}

// IsMobile reports whether phone is shaped like a local mobile number:
// at least ten characters with '9' in the second position.
func IsMobile(phone string) bool {
	r := []rune(phone)
	return len(r) >= 10 && r[1] == '9'
}

// IsAcceptedPhone is the phone rule used by the invitation and settings flows.
func IsAcceptedPhone(phone string) bool {
	return IsDigitsOnly(phone) && IsMobile(phone)
}
