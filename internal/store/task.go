package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
)

// TaskFilter narrows the result of TaskStore.List. Zero values match everything.
type TaskFilter struct {
	RoomID    string
	Frequency domain.Frequency
}

// Matches reports whether t passes the filter.
func (f TaskFilter) Matches(t *domain.Task) bool {
	if f.RoomID != "" && t.RoomID != f.RoomID {
		return false
	}
	if f.Frequency != "" && t.Frequency != f.Frequency {
		return false
	}
	return true
}

// TaskStore defines the interface for chore task persistence.
type TaskStore interface {
	// Create saves a new task. The task must pass domain validation.
	// Returns ErrDuplicate if a task with the same ID already exists.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDForUpdate is GetByID that also locks the row until the enclosing
	// transaction ends. Use it via WithTx for read-modify-write of one task.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns the tasks matching filter ordered by creation time, then ID.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// ListForUpdate is List that also locks the returned rows until the
	// enclosing transaction ends, so batch rewrites such as a rebalance or the
	// daily rollover cannot overwrite a concurrent completion.
	ListForUpdate(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update replaces the stored state of an existing task and bumps UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateMany applies Update to each task in order and stops at the first error.
	//
	// IMPORTANT: run this inside store.RunInTransaction via WithTx so that a
	// schedule rebalance is persisted all-or-nothing.
	UpdateMany(ctx context.Context, tasks []*domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
