package mocks

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore. Tasks are cloned on the way
// in and out so callers cannot mutate stored state. WithTx returns the same
// store; transactions are not isolated.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	order []uuid.UUID

	// Error injection; nil means the in-memory behavior.
	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error

	// UpdateCalls counts tasks written through Update or UpdateMany.
	UpdateCalls int
	// LockedReads counts GetByIDForUpdate and ListForUpdate calls.
	LockedReads int
}

// NewMockTaskStore creates a store holding clones of tasks.
func NewMockTaskStore(tasks ...*domain.Task) *MockTaskStore {
	m := &MockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
	for _, t := range tasks {
		m.tasks[t.ID] = t.Clone()
		m.order = append(m.order, t.ID)
	}
	return m
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[task.ID]; exists {
		return store.ErrDuplicate
	}
	m.tasks[task.ID] = task.Clone()
	m.order = append(m.order, task.ID)
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// GetByIDForUpdate implements store.TaskStore. Nothing is locked; the call
// is only counted.
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	m.LockedReads++
	m.mu.Unlock()
	return m.GetByID(ctx, id)
}

// ListForUpdate implements store.TaskStore. Nothing is locked; the call is
// only counted.
func (m *MockTaskStore) ListForUpdate(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	m.mu.Lock()
	m.LockedReads++
	m.mu.Unlock()
	return m.List(ctx, filter)
}

// List implements store.TaskStore. Tasks come back in insertion order.
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Task{}
	for _, id := range m.order {
		if task := m.tasks[id]; filter.Matches(task) {
			out = append(out, task.Clone())
		}
	}
	return out, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now().UTC()
	m.tasks[task.ID] = task.Clone()
	m.UpdateCalls++
	return nil
}

// UpdateMany implements store.TaskStore.
func (m *MockTaskStore) UpdateMany(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := m.Update(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	m.order = slices.DeleteFunc(m.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

// WithTx implements store.TaskStore.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Len returns the number of stored tasks.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}
