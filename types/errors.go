package types

import (
	"errors"
	"fmt"
)

// Error kinds returned by the registry. Use errors.Is to classify them.
var (
	ErrAlreadyExists = errors.New("domain already exists")
	ErrNotFound      = errors.New("domain not found")
	ErrInvalidRecord = errors.New("invalid domain")
	ErrInternal      = errors.New("internal error")
)

// AlreadyExists reports an insert under a key that is still held.
func AlreadyExists(id int) error {
	return fmt.Errorf("domain ID %d: %w", id, ErrAlreadyExists)
}

// NotFound reports a lookup of a key that is absent or expired.
func NotFound(id int) error {
	return fmt.Errorf("domain ID %d: %w", id, ErrNotFound)
}

// InvalidRecord reports a record that can never be stored.
func InvalidRecord(id int, reason string) error {
	return fmt.Errorf("domain ID %d: %s: %w", id, reason, ErrInvalidRecord)
}

// Internal wraps a storage or lock failure.
func Internal(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInternal)
}
