package storage

import (
	"errors"
	"fmt"
)

// ErrFallbackCategory is returned when the caller tries to delete the
// fallback category. Deleting it would leave reassigned expenses dangling.
var ErrFallbackCategory = errors.New("fallback category cannot be deleted")

// StorageError wraps an underlying I/O failure from the persistence layer.
// Callers surface it but do not retry.
type StorageError struct {
	Err error
	Op  string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
