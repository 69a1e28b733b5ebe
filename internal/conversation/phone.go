package conversation

import "strings"

// NormalizePhone validates a Kenyan mobile number and normalizes it to the
// canonical 254XXXXXXXXX form used by M-Pesa. Accepted shapes after stripping
// non-digits: 07XX/01XX (10 digits), 2547XX/2541XX (12), bare 7XX/1XX (9) and
// +254 (13, the plus is stripped). Normalization is idempotent.
func NormalizePhone(text string) (string, bool) {
	digits := digitsOnly(text)

	switch {
	case len(digits) == 10 && digits[0] == '0' && isMobilePrefix(digits[1]):
		return "254" + digits[1:], true
	case len(digits) == 12 && strings.HasPrefix(digits, "254") && isMobilePrefix(digits[3]):
		return digits, true
	case len(digits) == 9 && isMobilePrefix(digits[0]):
		return "254" + digits, true
	}
	return "", false
}

func digitsOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Kenyan mobile numbers start 7 (Safaricom/Airtel classic ranges) or 1.
func isMobilePrefix(c byte) bool {
	return c == '7' || c == '1'
}
