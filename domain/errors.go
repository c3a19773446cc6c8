package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain error taxonomy. Services return these (or a
// *ValidationError) directly; the API layer maps them onto HTTP status codes.
var (
	// ErrUnauthenticated means no valid identity was presented where one is
	// required. Checked before any ownership decision.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means a valid identity attempted a write on an entity it
	// does not own.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound means a referenced entity (post, group, comment) does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateFollow is reported by the follow store when the unique
	// (user, following) constraint rejects an insert. Services translate it
	// into the same validation error as the pre-insert check.
	ErrDuplicateFollow = errors.New("follow pair already exists")
)

// ValidationError reports a domain-rule violation: self-follow, duplicate
// follow, empty required text. The message is stable and safe to surface.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a domain validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
