package customers

import "strings"

// NormalizePhone canonicalizes a raw phone number for use as the customer
// natural key: trimmed, case-folded, separator characters stripped. A leading
// "+" survives so international prefixes stay distinguishable from local
// numbers.
func NormalizePhone(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
