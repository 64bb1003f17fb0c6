// Package services defines the business logic for the waitlist intake and
// admin review workflow. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSignupNotFound indicates that the mutation target does not exist.
	ErrSignupNotFound = errors.New("signup not found")

	// ErrDuplicateEmail is returned when an insert collides with an existing
	// signup's email.
	ErrDuplicateEmail = errors.New("email already on the waitlist")

	// ErrAuthorizationDenied indicates the write was rejected by row-level
	// authorization. For signups specifically the service recovers from it
	// transparently via the privileged fallback path; everywhere else it is
	// terminal.
	ErrAuthorizationDenied = errors.New("write not authorized")

	// ErrBackendUnavailable is returned when the backing store is unreachable
	// or misconfigured. Callers should fall back to an empty or last-known
	// view.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidStatus is returned when a status value is outside
	// {pending, approved, rejected}.
	ErrInvalidStatus = errors.New("status must be pending, approved or rejected")

	// ErrTokenInvalid is returned when a magic-link token is unknown, already
	// consumed, or expired. The three cases are deliberately indistinguishable.
	ErrTokenInvalid = errors.New("sign-in link is invalid or has expired")
)

// ValidationError carries the per-field messages produced by the submission
// validator. It blocks the insert entirely; nothing is written.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
