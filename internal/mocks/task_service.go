package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/service"
	"github.com/phrazzld/chorely-api/internal/store"
)

// ErrNotConfigured is returned by MockTaskService methods without a function field.
var ErrNotConfigured = errors.New("mock method not configured")

// MockTaskService implements service.TaskService with overridable functions.
type MockTaskService struct {
	CreateTaskFn        func(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error)
	GetTaskFn           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasksFn         func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	DeleteTaskFn        func(ctx context.Context, id uuid.UUID) error
	UpdateRecurrenceFn  func(ctx context.Context, id uuid.UUID, update service.RecurrenceUpdate) (*domain.Task, error)
	CompleteTaskFn      func(ctx context.Context, id uuid.UUID, date domain.Date) (*domain.Task, error)
	RebalanceScheduleFn func(ctx context.Context, availableDays []int) (*service.RebalanceResult, error)
	PreviewScheduleFn   func(tasks []*domain.Task, availableDays []int) *service.RebalanceResult
	RolloverFn          func(ctx context.Context, today domain.Date) (int, error)
	MigrateLegacyFn     func(ctx context.Context) (int, error)
	AgendaFn            func(ctx context.Context, date domain.Date) ([]service.AgendaItem, error)
	OccurrencesFn       func(ctx context.Context, id uuid.UUID, start, end domain.Date) ([]domain.Date, error)
	SuggestTasksFn      func(ctx context.Context, req generation.SuggestionRequest) ([]generation.Suggestion, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) CreateTask(ctx context.Context, input service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateTaskFn == nil {
		return nil, ErrNotConfigured
	}
	return m.CreateTaskFn(ctx, input)
}

func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetTaskFn == nil {
		return nil, ErrNotConfigured
	}
	return m.GetTaskFn(ctx, id)
}

func (m *MockTaskService) ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListTasksFn == nil {
		return nil, ErrNotConfigured
	}
	return m.ListTasksFn(ctx, filter)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTaskFn == nil {
		return ErrNotConfigured
	}
	return m.DeleteTaskFn(ctx, id)
}

func (m *MockTaskService) UpdateRecurrence(
	ctx context.Context,
	id uuid.UUID,
	update service.RecurrenceUpdate,
) (*domain.Task, error) {
	if m.UpdateRecurrenceFn == nil {
		return nil, ErrNotConfigured
	}
	return m.UpdateRecurrenceFn(ctx, id, update)
}

func (m *MockTaskService) CompleteTask(ctx context.Context, id uuid.UUID, date domain.Date) (*domain.Task, error) {
	if m.CompleteTaskFn == nil {
		return nil, ErrNotConfigured
	}
	return m.CompleteTaskFn(ctx, id, date)
}

func (m *MockTaskService) RebalanceSchedule(ctx context.Context, availableDays []int) (*service.RebalanceResult, error) {
	if m.RebalanceScheduleFn == nil {
		return nil, ErrNotConfigured
	}
	return m.RebalanceScheduleFn(ctx, availableDays)
}

func (m *MockTaskService) PreviewSchedule(tasks []*domain.Task, availableDays []int) *service.RebalanceResult {
	if m.PreviewScheduleFn == nil {
		return &service.RebalanceResult{}
	}
	return m.PreviewScheduleFn(tasks, availableDays)
}

func (m *MockTaskService) Rollover(ctx context.Context, today domain.Date) (int, error) {
	if m.RolloverFn == nil {
		return 0, ErrNotConfigured
	}
	return m.RolloverFn(ctx, today)
}

func (m *MockTaskService) MigrateLegacy(ctx context.Context) (int, error) {
	if m.MigrateLegacyFn == nil {
		return 0, ErrNotConfigured
	}
	return m.MigrateLegacyFn(ctx)
}

func (m *MockTaskService) Agenda(ctx context.Context, date domain.Date) ([]service.AgendaItem, error) {
	if m.AgendaFn == nil {
		return nil, ErrNotConfigured
	}
	return m.AgendaFn(ctx, date)
}

func (m *MockTaskService) Occurrences(
	ctx context.Context,
	id uuid.UUID,
	start, end domain.Date,
) ([]domain.Date, error) {
	if m.OccurrencesFn == nil {
		return nil, ErrNotConfigured
	}
	return m.OccurrencesFn(ctx, id, start, end)
}

func (m *MockTaskService) SuggestTasks(
	ctx context.Context,
	req generation.SuggestionRequest,
) ([]generation.Suggestion, error) {
	if m.SuggestTasksFn == nil {
		return nil, ErrNotConfigured
	}
	return m.SuggestTasksFn(ctx, req)
}
