package meeting

import "errors"

var (
	ErrNotFound         = errors.New("meeting not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrStartsAtRequired = errors.New("starts_at is required")
	ErrInvalidStartsAt  = errors.New("starts_at must be RFC 3339")
)
