// Package domain provides defenitions of all entities.
package domain

import "errors"

// Error kinds. Every ledger error wraps exactly one of them, so callers can
// branch on the kind with errors.Is.
var (
	// ErrValidation indicates bad input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound indicates that the operation targets an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a violation of the one-active-account-per-client rule.
	ErrConflict = errors.New("conflict")
	// ErrState indicates an operation invalid for the entity's current status.
	ErrState = errors.New("invalid state")
	// ErrInvariantViolation indicates that storage is in an impossible state.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Error is a ledger error of a specific kind.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the kind of the error.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the error kind of err or nil if err is not a ledger error.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrState, ErrInvariantViolation} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
