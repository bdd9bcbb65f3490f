package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/chorely-api/internal/config"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/domain/balance"
	"github.com/phrazzld/chorely-api/internal/domain/recurrence"
	"github.com/phrazzld/chorely-api/internal/events"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/jobs"
	"github.com/phrazzld/chorely-api/internal/platform/gemini"
	"github.com/phrazzld/chorely-api/internal/platform/postgres"
	"github.com/phrazzld/chorely-api/internal/service"
)

// application holds the wired dependencies of a running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	location    *time.Location
	taskService service.TaskService
	rollover    *jobs.RolloverScheduler
	dispatcher  *events.AsyncDispatcher
}

// newApplication wires stores, domain services and the task service.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}

	taskStore := postgres.NewPostgresTaskStore(db, logger)
	repo := service.NewTaskRepositoryAdapter(taskStore, db)

	dispatcher := events.NewAsyncDispatcher(events.NewLoggingHandler(logger), events.DefaultDispatcherConfig(), logger)
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(dispatcher)

	var suggester generation.Suggester
	if cfg.LLM.SuggestionsEnabled() {
		s, err := gemini.NewSuggester(ctx, logger, cfg.LLM)
		if err != nil {
			_ = dispatcher.Close(ctx)
			return nil, fmt.Errorf("failed to create suggestion provider: %w", err)
		}
		suggester = s
	} else {
		logger.Info("task suggestions disabled: no Gemini API key configured")
	}

	taskService, err := service.NewTaskService(service.TaskServiceDeps{
		Repo:       repo,
		Recurrence: recurrence.NewServiceWithParams(recurrence.NewParams(cfg.Scheduler.SearchHorizonDays)),
		Balance:    balance.NewServiceWithParams(balance.NewParams(cfg.Scheduler.AvailableDays)),
		Emitter:    emitter,
		Suggester:  suggester,
		Location:   loc,
		Logger:     logger,
	})
	if err != nil {
		_ = dispatcher.Close(ctx)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		location:    loc,
		taskService: taskService,
		dispatcher:  dispatcher,
	}

	if cfg.Rollover.Enabled {
		app.rollover, err = jobs.NewRolloverScheduler(taskService, cfg.Rollover.Schedule, loc, logger)
		if err != nil {
			_ = dispatcher.Close(ctx)
			return nil, err
		}
	}

	return app, nil
}

// today is the current calendar day in the configured timezone.
func (app *application) today() domain.Date {
	return domain.Today(app.location)
}

// Run starts the rollover job, if enabled, and serves HTTP until ctx is done.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if app.rollover != nil {
		if err := app.rollover.Start(ctx); err != nil {
			return fmt.Errorf("failed to start rollover job: %w", err)
		}
		app.logger.Info("rollover job scheduled",
			slog.String("schedule", app.config.Rollover.Schedule),
			slog.Time("next_run", app.rollover.NextRun(time.Now())))
	}

	return startHTTPServer(ctx, app)
}

// cleanup stops background work, drains pending events and closes the database.
func (app *application) cleanup() {
	if app.rollover != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), jobs.DefaultRolloverTimeout)
		if err := app.rollover.Stop(stopCtx); err != nil {
			app.logger.Error("failed to stop rollover job", slog.String("error", err.Error()))
		}
		cancel()
	}
	if app.dispatcher != nil {
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.dispatcher.Close(drainCtx); err != nil {
			app.logger.Error("failed to drain event dispatcher", slog.String("error", err.Error()))
		}
		cancel()
	}
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
}
