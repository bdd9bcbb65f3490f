package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/chorely-api/internal/platform/postgres"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR. It does not exit; the failing goose call returns an
// error that main handles.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// handleMigrations runs one goose command against the embedded migrations.
func handleMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	log := logger.With(slog.String("component", "migrations"), slog.String("command", command))

	migrations, err := postgres.EmbeddedMigrations()
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	log.Info("executing migrations", slog.Int("embedded", len(migrations)))

	if err := postgres.RunMigrations(ctx, db, command, &slogGooseLogger{logger: log}); err != nil {
		return err
	}

	log.Info("migrations finished")
	return nil
}
