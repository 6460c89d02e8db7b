package service

import "strings"

// Contact-field redaction for sessions without the view_contacts
// permission. Pure functions; empty input stays empty.

// MaskEmail keeps roughly the first third of the local part and the
// domain unchanged: "alice@example.com" -> "al***@example.com".
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		// Not an address; redact everything
		return strings.Repeat("*", len(email))
	}

	local := email[:at]
	domain := email[at:]

	keep := len(local) * 3 / 10
	if keep < 1 {
		keep = 1
	}

	return local[:keep] + strings.Repeat("*", len(local)-keep) + domain
}

// MaskPhone keeps a three-character prefix and suffix:
// "+15551234567" -> "+15******567".
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if len(phone) <= 6 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:3] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-3:]
}

// MaskAddress keeps only the second half of the string:
// "12 Main Street" -> "*******Street".
func MaskAddress(address string) string {
	if address == "" {
		return ""
	}
	half := len(address) / 2
	return strings.Repeat("*", half) + address[half:]
}
