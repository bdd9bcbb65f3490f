package store

import (
	"errors"
	"fmt"
)

// Errors shared by every TaskStore implementation. Drivers map their own
// errors onto these so the service and API layers never see SQL codes.
var (
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicate means a unique constraint (the task id) was violated.
	ErrDuplicate = errors.New("entity already exists")
	// ErrInvalidEntity wraps domain validation or check-constraint failures.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrTransactionFailed is returned by RunInTransaction when commit fails.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is, or wraps, ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which task operation failed, for batch writes where the
// failing row matters.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s %s (%s)", e.Entity, e.Operation, e.Message)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
