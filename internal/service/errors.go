package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check them with errors.Is; the API layer maps
// them to HTTP status codes.
var (
	// ErrSuggestionsDisabled is returned by SuggestTasks when no AI provider is configured.
	ErrSuggestionsDisabled = errors.New("task suggestions are not configured")

	// ErrInvalidRange is returned when an occurrence query spans too many days.
	ErrInvalidRange = errors.New("invalid date range")
)

// ServiceError adds the failing operation to an underlying error.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
