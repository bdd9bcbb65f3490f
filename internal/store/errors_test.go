package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("failed to do something: %w", ErrNotFound), true},
		{"ErrTaskNotFound", ErrTaskNotFound, true},
		{"wrapped ErrTaskNotFound", fmt.Errorf("load: %w", ErrTaskNotFound), true},
		{"store error wrapping not found", NewStoreError("task", "get", "missing", ErrTaskNotFound), true},
		{"duplicate", ErrDuplicate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	if !IsDuplicateError(fmt.Errorf("insert: %w", ErrDuplicate)) {
		t.Error("expected wrapped ErrDuplicate to be a duplicate error")
	}
	if IsDuplicateError(ErrNotFound) {
		t.Error("ErrNotFound should not be a duplicate error")
	}
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreError("task", "update", "could not write", inner)

	want := "task update (could not write): connection reset"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, inner) {
		t.Error("expected StoreError to unwrap to the inner error")
	}

	bare := NewStoreError("task", "list", "no rows", nil)
	if bare.Error() != "task list (no rows)" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}
