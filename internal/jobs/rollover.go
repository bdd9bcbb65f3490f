package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// DefaultRolloverTimeout bounds a single rollover run.
const DefaultRolloverTimeout = 2 * time.Minute

// ErrAlreadyStarted is returned by Start on a running scheduler.
var ErrAlreadyStarted = errors.New("rollover scheduler already started")

// RolloverRunner advances stale due dates. service.TaskService satisfies it.
type RolloverRunner interface {
	Rollover(ctx context.Context, today domain.Date) (int, error)
}

// RolloverScheduler runs RolloverRunner.Rollover on a cron schedule in the
// configured timezone. Runs never overlap.
type RolloverScheduler struct {
	runner   RolloverRunner
	schedule cron.Schedule
	spec     string
	loc      *time.Location
	timeout  time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	c       *cron.Cron
	running sync.Mutex
}

// NewRolloverScheduler parses spec as a five-field cron expression or a
// descriptor such as "@daily".
func NewRolloverScheduler(
	runner RolloverRunner,
	spec string,
	loc *time.Location,
	log *slog.Logger,
) (*RolloverScheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("%w: rollover runner cannot be nil", domain.ErrValidation)
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}

	return &RolloverScheduler{
		runner:   runner,
		schedule: schedule,
		spec:     spec,
		loc:      loc,
		timeout:  DefaultRolloverTimeout,
		logger:   log.With(slog.String("component", "rollover_job")),
	}, nil
}

// Start registers the job and starts the cron loop. Runs triggered after
// Start derive their context from ctx.
func (s *RolloverScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return ErrAlreadyStarted
	}

	s.c = cron.New(cron.WithLocation(s.loc))
	s.c.Schedule(s.schedule, cron.FuncJob(func() {
		// RunOnce logs its own failures.
		_, _ = s.RunOnce(ctx)
	}))
	s.c.Start()

	s.logger.Info("rollover scheduler started",
		slog.String("schedule", s.spec),
		slog.String("tz", s.loc.String()),
		slog.Time("next_run", s.NextRun(time.Now())))
	return nil
}

// Stop halts the cron loop and waits for a running job, or for ctx to end.
func (s *RolloverScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		s.logger.Info("rollover scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for rollover job: %w", ctx.Err())
	}
}

// NextRun returns the first scheduled run after now.
func (s *RolloverScheduler) NextRun(now time.Time) time.Time {
	return s.schedule.Next(now.In(s.loc))
}

// RunOnce performs a rollover for today in the scheduler's timezone. A call
// that finds another run in progress returns immediately with 0.
func (s *RolloverScheduler) RunOnce(ctx context.Context) (int, error) {
	if !s.running.TryLock() {
		s.logger.Warn("rollover already running, skipping")
		return 0, nil
	}
	defer s.running.Unlock()

	runID := uuid.New().String()
	log := s.logger.With(slog.String("run_id", runID))
	ctx = logger.WithLogger(ctx, log)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	today := domain.Today(s.loc)
	started := time.Now()
	updated, err := s.runner.Rollover(ctx, today)
	if err != nil {
		log.Error("rollover run failed",
			slog.String("today", today.String()),
			slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("rollover run finished",
		slog.String("today", today.String()),
		slog.Int("updated", updated),
		slog.Duration("duration", time.Since(started)))
	return updated, nil
}
