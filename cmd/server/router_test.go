package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/mocks"
	"github.com/phrazzld/chorely-api/internal/service"
	"github.com/phrazzld/chorely-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := setupRouter(&mocks.MockTaskService{}, func() domain.Date { return domain.MustParseDate("2024-01-03") }, discardLogger())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(shared.TraceIDHeader))
}

func TestRouterWiresTaskAndScheduleRoutes(t *testing.T) {
	t.Parallel()

	today := domain.MustParseDate("2024-01-03")
	var agendaDate domain.Date
	var listed bool
	svc := &mocks.MockTaskService{
		ListTasksFn: func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
			listed = true
			return nil, nil
		},
		AgendaFn: func(ctx context.Context, date domain.Date) ([]service.AgendaItem, error) {
			agendaDate = date
			return nil, nil
		},
	}
	router := setupRouter(svc, func() domain.Date { return today }, discardLogger())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, listed)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/agenda", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, today, agendaDate)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/tasks", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterRecoversFromPanics(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockTaskService{
		ListTasksFn: func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
			panic("boom")
		},
	}
	router := setupRouter(svc, func() domain.Date { return domain.MustParseDate("2024-01-03") }, discardLogger())

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
