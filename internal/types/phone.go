package types

import (
	"strings"
)

// FormatPhone pretty-prints a Brazilian phone number. Everything but digits is
// dropped; a leading 55 country code is stripped from longer inputs. Mobile
// numbers (11 digits) become "(11) 98765-4321", landlines (10 digits)
// "(11) 3456-7890". Other lengths come back as bare digits, and an input
// without digits yields "".
func FormatPhone(value string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
	if digits == "" {
		return ""
	}

	if len(digits) > 11 && strings.HasPrefix(digits, "55") {
		digits = digits[len(digits)-11:]
	}

	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return digits
	}
}
