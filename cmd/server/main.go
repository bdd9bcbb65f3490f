// Package main implements the entry point for the Chorely API server, which
// schedules recurring household chores, balances them across the week and
// optionally asks an LLM for chore ideas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	_ "time/tzdata" // embeds zone data for scheduler timezones

	"github.com/phrazzld/chorely-api/internal/config"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/platform/postgres"
)

// options are the command-line flags.
type options struct {
	configPath    string
	migrate       string
	migrateLegacy bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("chorely-api", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ./config.yaml when present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a schema migration command and exit: "+strings.Join(postgres.MigrationCommands, ", "))
	fs.BoolVar(&opts.migrateLegacy, "migrate-legacy", false,
		"backfill scheduled days and anchors of tasks created before recurrence rules, then exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrate != "" && !slices.Contains(postgres.MigrationCommands, opts.migrate) {
		return options{}, fmt.Errorf("unknown migration command %q", opts.migrate)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("chorely-api exited with error", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run loads configuration and either executes a one-shot command or serves
// HTTP until ctx is cancelled.
func run(ctx context.Context, opts options) error {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Any("available_days", cfg.Scheduler.AvailableDays),
		slog.String("timezone", cfg.Scheduler.Timezone),
		slog.Bool("suggestions_enabled", cfg.LLM.SuggestionsEnabled()))

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDB(db, log)
		return handleMigrations(ctx, db, opts.migrate, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if opts.migrateLegacy {
		defer app.cleanup()
		migrated, err := app.taskService.MigrateLegacy(ctx)
		if err != nil {
			return fmt.Errorf("legacy migration failed: %w", err)
		}
		log.Info("legacy tasks migrated", slog.Int("migrated", migrated))
		return nil
	}

	return app.Run(ctx)
}
