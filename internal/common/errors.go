// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error taxonomy. Operations either succeed completely or fail with one
// of these; the core never retries and never applies half of a mutation.
var (
	// ErrNotFound covers records that are absent or owned by someone
	// else. Cross-user access is reported identically to absence so
	// existence never leaks.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed input. Nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrConsistency means a paired account+transaction write could not
	// be applied as a unit. The enclosing storage transaction is rolled
	// back, so no partial state is ever visible.
	ErrConsistency = errors.New("ledger consistency violation")

	// ErrUnauthenticated means a bearer credential did not resolve to a
	// user identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrDuplicateEntry covers unique-constraint conflicts, e.g. a
	// registration with an email that is already taken.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
