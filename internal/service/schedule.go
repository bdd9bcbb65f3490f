package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/events"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/store"
)

// inTx runs fn with a repository bound to a single transaction.
func (s *taskServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error {
	return store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.repo.WithTx(tx))
	})
}

// RebalanceSchedule implements TaskService.RebalanceSchedule.
func (s *taskServiceImpl) RebalanceSchedule(ctx context.Context, availableDays []int) (*RebalanceResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.today()

	var result *RebalanceResult
	err := s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		var err error
		result, err = s.rebalanceWith(ctx, repo, availableDays, today)
		return err
	})
	if err != nil {
		log.Error("failed to rebalance schedule", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("schedule rebalanced",
		slog.Int("assigned", len(result.Assignments)),
		slog.Int("moved", result.Moved))
	s.emitRebalanced(ctx, result)
	return result, nil
}

// rebalanceWith assigns days to every week-based task in repo and writes the
// tasks whose day changed, with their due dates recomputed from today.
func (s *taskServiceImpl) rebalanceWith(
	ctx context.Context,
	repo TaskRepository,
	availableDays []int,
	today domain.Date,
) (*RebalanceResult, error) {
	tasks, err := repo.ListForUpdate(ctx, store.TaskFilter{})
	if err != nil {
		return nil, NewServiceError("rebalance", "failed to list tasks", err)
	}

	result := s.PreviewSchedule(tasks, availableDays)

	byID := make(map[uuid.UUID]*domain.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	changed := make([]*domain.Task, 0, result.Moved)
	for _, a := range result.Assignments {
		task := byID[a.TaskID]
		if task == nil || (task.ScheduledDay != nil && *task.ScheduledDay == a.ScheduledDay) {
			continue
		}
		task.ScheduledDay = domain.IntPtr(a.ScheduledDay)
		task.NextDueDate = s.nextDue(task, today)
		changed = append(changed, task)
	}

	if err := repo.UpdateMany(ctx, changed); err != nil {
		return nil, NewServiceError("rebalance", "failed to save assignments", err)
	}
	return result, nil
}

// PreviewSchedule implements TaskService.PreviewSchedule.
func (s *taskServiceImpl) PreviewSchedule(tasks []*domain.Task, availableDays []int) *RebalanceResult {
	days := s.balance.AvailableDays(availableDays)
	assignments := s.balance.Optimize(tasks, days)

	current := make(map[uuid.UUID]*int, len(tasks))
	for _, task := range tasks {
		current[task.ID] = task.ScheduledDay
	}
	moved := 0
	for _, a := range assignments {
		if day := current[a.TaskID]; day == nil || *day != a.ScheduledDay {
			moved++
		}
	}

	return &RebalanceResult{
		AvailableDays: days,
		Assignments:   assignments,
		DayLoads:      s.balance.DayLoads(tasks, assignments),
		Moved:         moved,
	}
}

// Rollover implements TaskService.Rollover.
func (s *taskServiceImpl) Rollover(ctx context.Context, today domain.Date) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if today.IsZero() {
		today = s.today()
	}

	updated := 0
	err := s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		tasks, err := repo.ListForUpdate(ctx, store.TaskFilter{})
		if err != nil {
			return NewServiceError("rollover", "failed to list tasks", err)
		}

		stale := make([]*domain.Task, 0)
		for _, task := range tasks {
			if !task.NextDueDate.IsZero() && !task.NextDueDate.Before(today) {
				continue
			}
			next := s.nextDue(task, today)
			if next.Equal(task.NextDueDate) {
				continue
			}
			task.NextDueDate = next
			stale = append(stale, task)
		}

		if err := repo.UpdateMany(ctx, stale); err != nil {
			return NewServiceError("rollover", "failed to save due dates", err)
		}
		updated = len(stale)
		return nil
	})
	if err != nil {
		log.Error("daily rollover failed", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("daily rollover complete",
		slog.String("today", today.String()),
		slog.Int("updated", updated))
	if updated > 0 {
		s.emit(ctx, events.TypeDueDatesRolledOver, events.RolledOverPayload{Today: today.String(), Updated: updated})
	}
	return updated, nil
}

// MigrateLegacy implements TaskService.MigrateLegacy.
func (s *taskServiceImpl) MigrateLegacy(ctx context.Context) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.today()

	migrated := 0
	err := s.inTx(ctx, func(ctx context.Context, repo TaskRepository) error {
		tasks, err := repo.ListForUpdate(ctx, store.TaskFilter{})
		if err != nil {
			return NewServiceError("migrate_legacy", "failed to list tasks", err)
		}

		changed := make([]*domain.Task, 0)
		for _, task := range tasks {
			if backfillRecurrence(task) {
				if task.NextDueDate.IsZero() {
					task.NextDueDate = s.nextDue(task, today)
				}
				changed = append(changed, task)
			}
		}

		if err := repo.UpdateMany(ctx, changed); err != nil {
			return NewServiceError("migrate_legacy", "failed to save tasks", err)
		}
		migrated = len(changed)
		return nil
	})
	if err != nil {
		log.Error("legacy migration failed", slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("legacy migration complete", slog.Int("migrated", migrated))
	return migrated, nil
}

// backfillRecurrence fills a missing scheduled day and anchor from the task's
// fallback date. It reports whether anything changed.
func backfillRecurrence(task *domain.Task) bool {
	if task.Frequency == domain.FrequencyDaily {
		return false
	}

	fallback := task.FallbackDate()
	changed := false
	if task.ScheduledDay == nil {
		if task.Frequency.IsWeekBased() {
			task.ScheduledDay = domain.IntPtr(int(fallback.Weekday()))
		} else {
			task.ScheduledDay = domain.IntPtr(fallback.Day())
		}
		changed = true
	}
	if task.AnchorDate.IsZero() {
		task.AnchorDate = fallback
		changed = true
	}
	return changed
}
