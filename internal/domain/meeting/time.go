package meeting

import (
	"strings"
	"time"
)

func parseStartsAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrStartsAtRequired
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidStartsAt
	}
	return parsed.UTC(), nil
}
