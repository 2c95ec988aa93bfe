package auth

import (
	"errors"
	"fmt"
)

var (
	ErrNotRegistered  = errors.New("phone not registered")
	ErrBadCredentials = errors.New("bad credentials")
	ErrPINMismatch    = errors.New("admin pin mismatch")
	ErrNotAdmin       = errors.New("not an admin")
)

// NotApprovedError carries the member's current status so callers can
// tell a pending member from a rejected one.
type NotApprovedError struct {
	Status string
}

func (e *NotApprovedError) Error() string {
	return fmt.Sprintf("member not approved (status %s)", e.Status)
}
