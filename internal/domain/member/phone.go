package member

import "strings"

// NormalizePhone coerces free-form input into an E.164-like string.
// US-style numbers become +1XXXXXXXXXX; anything else keeps its digits
// behind a leading plus. Returns ErrInvalidPhone when no digits remain.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if d == "" {
		return "", ErrInvalidPhone
	}

	switch {
	case len(d) == 10:
		return "+1" + d, nil
	case len(d) == 11 && d[0] == '1':
		return "+" + d, nil
	default:
		return "+" + d, nil
	}
}
