// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// OperationError wraps a failed store operation with a message suitable for
// showing to the user. The underlying cause stays reachable via Unwrap.
type OperationError struct {
	Err         error
	UserMessage string
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new user-facing operation error.
func NewOperationError(userMessage string, err error) error {
	return &OperationError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the user-facing message from an error, falling back to
// the raw error text.
func UserMessage(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.UserMessage
	}
	return err.Error()
}
