package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/store"
)

// TaskRepository is the persistence surface TaskService needs: the task store
// plus access to the database that owns its transactions.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	ListForUpdate(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateMany(ctx context.Context, tasks []*domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the database transactions are started on.
	DB() *sql.DB
}

// taskRepositoryAdapter adapts a store.TaskStore to TaskRepository.
type taskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter wraps taskStore so the service can run it inside
// transactions opened on db.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{TaskStore: taskStore, db: db}
}

func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{TaskStore: a.TaskStore.WithTx(tx), db: a.db}
}

func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
