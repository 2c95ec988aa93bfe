package member

import "errors"

var (
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("member not found")
	ErrPhoneTaken    = errors.New("phone already registered")
)
