package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/store"
)

const taskColumns = `id, name, room_id, frequency, scheduled_day, anchor_date,
	estimated_minutes, next_due_date, completed_dates, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor contract, wiring bug
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	completed, err := encodeCompletedDates(task.CompletedDates)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.Name,
		task.RoomID,
		string(task.Frequency),
		nullableDay(task.ScheduledDay),
		task.AnchorDate,
		task.EstimatedMinutes,
		task.NextDueDate,
		completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("frequency", string(task.Frequency)))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.getByID(ctx, id, false)
}

// GetByIDForUpdate implements store.TaskStore.GetByIDForUpdate.
func (s *PostgresTaskStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.getByID(ctx, id, true)
}

func (s *PostgresTaskStore) getByID(ctx context.Context, id uuid.UUID, lock bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return task, nil
}

// List implements store.TaskStore.List.
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	return s.list(ctx, filter, false)
}

// ListForUpdate implements store.TaskStore.ListForUpdate.
func (s *PostgresTaskStore) ListForUpdate(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	return s.list(ctx, filter, true)
}

func (s *PostgresTaskStore) list(ctx context.Context, filter store.TaskFilter, lock bool) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		where []string
		args  []any
	)
	if filter.RoomID != "" {
		args = append(args, filter.RoomID)
		where = append(where, fmt.Sprintf("room_id = $%d", len(args)))
	}
	if filter.Frequency != "" {
		args = append(args, string(filter.Frequency))
		where = append(where, fmt.Sprintf("frequency = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	completed, err := encodeCompletedDates(task.CompletedDates)
	if err != nil {
		return err
	}

	task.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE tasks
		SET name = $1, room_id = $2, frequency = $3, scheduled_day = $4,
			anchor_date = $5, estimated_minutes = $6, next_due_date = $7,
			completed_dates = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Name,
		task.RoomID,
		string(task.Frequency),
		nullableDay(task.ScheduledDay),
		task.AnchorDate,
		task.EstimatedMinutes,
		task.NextDueDate,
		completed,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "task"); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		return err
	}
	return nil
}

// UpdateMany implements store.TaskStore.UpdateMany.
func (s *PostgresTaskStore) UpdateMany(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := s.Update(ctx, task); err != nil {
			return store.NewStoreError("task", "update_many", "task "+task.ID.String(), err)
		}
	}
	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "task"); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrTaskNotFound
		}
		return err
	}
	log.Debug("task deleted", slog.String("task_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task         domain.Task
		frequency    string
		scheduledDay sql.NullInt32
		completed    []byte
	)
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.RoomID,
		&frequency,
		&scheduledDay,
		&task.AnchorDate,
		&task.EstimatedMinutes,
		&task.NextDueDate,
		&completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Frequency = domain.Frequency(frequency)
	if scheduledDay.Valid {
		task.ScheduledDay = domain.IntPtr(int(scheduledDay.Int32))
	}
	task.CompletedDates, err = decodeCompletedDates(completed)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}
	return &task, nil
}

func nullableDay(day *int) sql.NullInt32 {
	if day == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*day), Valid: true}
}

func encodeCompletedDates(dates []domain.Date) ([]byte, error) {
	if dates == nil {
		dates = []domain.Date{}
	}
	data, err := json.Marshal(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completed dates: %w", err)
	}
	return data, nil
}

func decodeCompletedDates(data []byte) ([]domain.Date, error) {
	dates := []domain.Date{}
	if len(data) == 0 {
		return dates, nil
	}
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("failed to decode completed dates: %w", err)
	}
	if dates == nil {
		dates = []domain.Date{}
	}
	return dates, nil
}
