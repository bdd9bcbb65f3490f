package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/domain/balance"
	"github.com/phrazzld/chorely-api/internal/domain/recurrence"
	"github.com/phrazzld/chorely-api/internal/events"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/store"
)

// MaxOccurrenceRangeDays bounds a single Occurrences query.
const MaxOccurrenceRangeDays = 3660

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Name             string
	RoomID           string
	Frequency        domain.Frequency
	ScheduledDay     *int
	AnchorDate       domain.Date
	EstimatedMinutes int
}

// RecurrenceUpdate is a manual edit of a task's recurrence. A nil
// ScheduledDay on a week-based frequency lets the balancer choose the day;
// on a month-based frequency the day of the task's fallback date is used.
type RecurrenceUpdate struct {
	Frequency    domain.Frequency
	ScheduledDay *int
	AnchorDate   domain.Date
}

// RebalanceResult reports a balancing pass.
type RebalanceResult struct {
	AvailableDays []int                `json:"available_days"`
	Assignments   []balance.Assignment `json:"assignments"`
	DayLoads      map[int]int          `json:"day_loads"`
	// Moved counts tasks whose scheduled day changed.
	Moved int `json:"moved"`
}

// AgendaItem is a task due on a given date.
type AgendaItem struct {
	Task      *domain.Task `json:"task"`
	Completed bool         `json:"completed"`
}

// TaskService provides chore task operations and keeps schedules consistent.
type TaskService interface {
	// CreateTask validates and stores a new task and derives its next due date.
	// A week-based task created without a scheduled day triggers a rebalance.
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns the tasks matching filter.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// UpdateRecurrence applies a manual frequency/day edit. An existing
	// anchor is kept unless the update supplies one; a missing anchor is
	// backfilled from the task's fallback date.
	UpdateRecurrence(ctx context.Context, id uuid.UUID, update RecurrenceUpdate) (*domain.Task, error)

	// CompleteTask records a completion on date (today when zero) and
	// advances NextDueDate past it.
	CompleteTask(ctx context.Context, id uuid.UUID, date domain.Date) (*domain.Task, error)

	// RebalanceSchedule reassigns scheduled days of all week-based tasks and
	// persists the changes atomically. Empty availableDays uses the configured days.
	RebalanceSchedule(ctx context.Context, availableDays []int) (*RebalanceResult, error)

	// PreviewSchedule runs the balancer over tasks without persisting anything.
	PreviewSchedule(tasks []*domain.Task, availableDays []int) *RebalanceResult

	// Rollover recomputes NextDueDate for tasks whose cached due date is
	// before today. It returns the number of tasks updated.
	Rollover(ctx context.Context, today domain.Date) (int, error)

	// MigrateLegacy backfills ScheduledDay and AnchorDate from NextDueDate
	// for tasks stored under the due-date-only model.
	MigrateLegacy(ctx context.Context) (int, error)

	// Agenda lists the tasks due on date with their completion state.
	Agenda(ctx context.Context, date domain.Date) ([]AgendaItem, error)

	// Occurrences lists a task's occurrences in [start, end].
	Occurrences(ctx context.Context, id uuid.UUID, start, end domain.Date) ([]domain.Date, error)

	// SuggestTasks asks the configured provider for chore ideas for a room.
	SuggestTasks(ctx context.Context, req generation.SuggestionRequest) ([]generation.Suggestion, error)
}

// TaskServiceDeps are the collaborators of NewTaskService. Repo, Recurrence
// and Balance are required; the rest have defaults.
type TaskServiceDeps struct {
	Repo       TaskRepository
	Recurrence recurrence.Service
	Balance    balance.Service
	// Emitter receives domain events. Nil disables events.
	Emitter events.EventEmitter
	// Suggester provides AI suggestions. Nil disables SuggestTasks.
	Suggester generation.Suggester
	// Location decides the calendar day of "now". Defaults to time.Local.
	Location *time.Location
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

type taskServiceImpl struct {
	repo       TaskRepository
	recurrence recurrence.Service
	balance    balance.Service
	emitter    events.EventEmitter
	suggester  generation.Suggester
	location   *time.Location
	clock      func() time.Time
	logger     *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(deps TaskServiceDeps) (TaskService, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("%w: repository cannot be nil", domain.ErrValidation)
	}
	if deps.Recurrence == nil {
		return nil, fmt.Errorf("%w: recurrence service cannot be nil", domain.ErrValidation)
	}
	if deps.Balance == nil {
		return nil, fmt.Errorf("%w: balance service cannot be nil", domain.ErrValidation)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &taskServiceImpl{
		repo:       deps.Repo,
		recurrence: deps.Recurrence,
		balance:    deps.Balance,
		emitter:    deps.Emitter,
		suggester:  deps.Suggester,
		location:   loc,
		clock:      clock,
		logger:     log.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) today() domain.Date {
	return domain.DateOf(s.clock().In(s.location))
}

// nextDue returns the first occurrence on or after from that has not been
// completed yet.
func (s *taskServiceImpl) nextDue(task *domain.Task, from domain.Date) domain.Date {
	next := s.recurrence.NextOccurrenceOnOrAfter(task, from)
	if task.IsCompletedOn(next) {
		next = s.recurrence.NextOccurrenceAfter(task, next)
	}
	return next
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Name, input.RoomID, input.Frequency, input.ScheduledDay, input.EstimatedMinutes)
	if err != nil {
		log.Warn("invalid task input", slog.String("error", err.Error()))
		return nil, err
	}

	today := s.today()
	task.AnchorDate = input.AnchorDate
	if task.AnchorDate.IsZero() && task.Frequency.NeedsAnchor() {
		task.AnchorDate = today
	}
	task.NextDueDate = s.nextDue(task, today)

	needsDay := task.Frequency.IsWeekBased() && task.ScheduledDay == nil
	var rebalance *RebalanceResult

	err = s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		if err := repo.Create(ctx, task); err != nil {
			return NewServiceError("create_task", "failed to save task", err)
		}
		if !needsDay {
			return nil
		}
		var err error
		rebalance, err = s.rebalanceWith(ctx, repo, nil, today)
		if err != nil {
			return err
		}
		stored, err := repo.GetByID(ctx, task.ID)
		if err != nil {
			return NewServiceError("create_task", "failed to reload task", err)
		}
		task = stored
		return nil
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("frequency", string(task.Frequency)),
		slog.String("next_due_date", task.NextDueDate.String()))

	s.emit(ctx, events.TypeTaskCreated, events.TaskPayload{TaskID: task.ID, Name: task.Name, RoomID: task.RoomID})
	if rebalance != nil {
		s.emitRebalanced(ctx, rebalance)
	}
	return task, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_task", "failed to load task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	s.emit(ctx, events.TypeTaskDeleted, events.TaskPayload{TaskID: id})
	return nil
}

// UpdateRecurrence implements TaskService.UpdateRecurrence.
func (s *taskServiceImpl) UpdateRecurrence(
	ctx context.Context,
	id uuid.UUID,
	update RecurrenceUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.today()

	var (
		result    *domain.Task
		rebalance *RebalanceResult
	)
	err := s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		task, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return NewServiceError("update_recurrence", "failed to load task", err)
		}

		applyRecurrenceUpdate(task, update)
		if err := task.Validate(); err != nil {
			return err
		}
		task.NextDueDate = s.nextDue(task, today)

		if err := repo.Update(ctx, task); err != nil {
			return NewServiceError("update_recurrence", "failed to save task", err)
		}

		if task.Frequency.IsWeekBased() && update.ScheduledDay == nil {
			rebalance, err = s.rebalanceWith(ctx, repo, nil, today)
			if err != nil {
				return err
			}
			if task, err = repo.GetByID(ctx, id); err != nil {
				return NewServiceError("update_recurrence", "failed to reload task", err)
			}
		}
		result = task
		return nil
	})
	if err != nil {
		log.Warn("failed to update recurrence",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task recurrence updated",
		slog.String("task_id", id.String()),
		slog.String("frequency", string(result.Frequency)))
	s.emit(ctx, events.TypeTaskRescheduled, events.TaskPayload{TaskID: id, Name: result.Name, RoomID: result.RoomID})
	if rebalance != nil {
		s.emitRebalanced(ctx, rebalance)
	}
	return result, nil
}

// applyRecurrenceUpdate mutates task per the anchor policy: an explicit anchor
// wins, an existing anchor is kept, and a missing one is backfilled from the
// task's fallback date.
func applyRecurrenceUpdate(task *domain.Task, update RecurrenceUpdate) {
	fallback := task.FallbackDate()
	changedKind := task.Frequency.IsWeekBased() != update.Frequency.IsWeekBased() ||
		task.Frequency.IsMonthBased() != update.Frequency.IsMonthBased()

	task.Frequency = update.Frequency
	switch {
	case update.ScheduledDay != nil:
		task.ScheduledDay = domain.IntPtr(*update.ScheduledDay)
	case changedKind || task.Frequency == domain.FrequencyDaily:
		// A weekday is meaningless as a day of month and vice versa.
		task.ScheduledDay = nil
	}
	if task.ScheduledDay == nil && task.Frequency.IsMonthBased() {
		task.ScheduledDay = domain.IntPtr(fallback.Day())
	}

	switch {
	case !update.AnchorDate.IsZero():
		task.AnchorDate = update.AnchorDate
	case task.AnchorDate.IsZero() && task.Frequency.NeedsAnchor():
		task.AnchorDate = fallback
	}
}

// CompleteTask implements TaskService.CompleteTask.
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id uuid.UUID, date domain.Date) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if date.IsZero() {
		date = s.today()
	}

	var task *domain.Task
	err := s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		var err error
		task, err = repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return NewServiceError("complete_task", "failed to load task", err)
		}

		task.MarkCompleted(date)
		next := s.recurrence.NextOccurrenceAfter(task, date)
		if task.NextDueDate.IsZero() || next.After(task.NextDueDate) {
			task.NextDueDate = next
		}

		if err := repo.Update(ctx, task); err != nil {
			return NewServiceError("complete_task", "failed to save task", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to save completion",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task completed",
		slog.String("task_id", id.String()),
		slog.String("date", date.String()),
		slog.String("next_due_date", task.NextDueDate.String()))
	s.emit(ctx, events.TypeTaskCompleted, events.TaskCompletedPayload{
		TaskID:      id,
		Date:        date.String(),
		NextDueDate: task.NextDueDate.String(),
	})
	return task, nil
}

// Agenda implements TaskService.Agenda.
func (s *taskServiceImpl) Agenda(ctx context.Context, date domain.Date) ([]AgendaItem, error) {
	if date.IsZero() {
		date = s.today()
	}

	tasks, err := s.repo.List(ctx, store.TaskFilter{})
	if err != nil {
		return nil, NewServiceError("agenda", "failed to list tasks", err)
	}

	items := []AgendaItem{}
	for _, task := range tasks {
		if s.recurrence.IsDueOn(task, date) {
			items = append(items, AgendaItem{Task: task, Completed: task.IsCompletedOn(date)})
		}
	}
	return items, nil
}

// Occurrences implements TaskService.Occurrences.
func (s *taskServiceImpl) Occurrences(
	ctx context.Context,
	id uuid.UUID,
	start, end domain.Date,
) ([]domain.Date, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidRange)
	}
	if start.DaysUntil(end) > MaxOccurrenceRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, MaxOccurrenceRangeDays)
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("occurrences", "failed to load task", err)
	}
	return s.recurrence.OccurrencesInRange(task, start, end), nil
}

// SuggestTasks implements TaskService.SuggestTasks.
func (s *taskServiceImpl) SuggestTasks(
	ctx context.Context,
	req generation.SuggestionRequest,
) ([]generation.Suggestion, error) {
	if s.suggester == nil {
		return nil, ErrSuggestionsDisabled
	}
	req.RoomID = strings.TrimSpace(req.RoomID)
	if req.RoomID == "" {
		return nil, generation.ErrEmptyRoom
	}

	if len(req.ExistingTasks) == 0 {
		existing, err := s.repo.List(ctx, store.TaskFilter{RoomID: req.RoomID})
		if err != nil {
			return nil, NewServiceError("suggest_tasks", "failed to list room tasks", err)
		}
		for _, task := range existing {
			req.ExistingTasks = append(req.ExistingTasks, task.Name)
		}
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, req)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("suggestion provider failed",
			slog.String("error", err.Error()),
			slog.String("room_id", req.RoomID))
		return nil, err
	}
	return suggestions, nil
}

// emit publishes an event. Events are notifications: a failing handler is
// logged and does not fail the operation that already committed.
func (s *taskServiceImpl) emit(ctx context.Context, eventType string, payload any) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

func (s *taskServiceImpl) emitRebalanced(ctx context.Context, result *RebalanceResult) {
	s.emit(ctx, events.TypeScheduleRebalanced, events.ScheduleRebalancedPayload{
		AvailableDays: result.AvailableDays,
		Moved:         result.Moved,
		DayLoads:      result.DayLoads,
	})
}
