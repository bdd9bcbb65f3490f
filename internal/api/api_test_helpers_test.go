package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/chorely-api/internal/api"
	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

var testToday = domain.MustParseDate("2024-01-03")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the handlers the same way the server does.
func newTestRouter(svc *mocks.MockTaskService) http.Handler {
	log := testLogger()
	tasks := api.NewTaskHandler(svc, log)
	schedule := api.NewScheduleHandler(svc, func() domain.Date { return testToday }, log)
	suggestions := api.NewSuggestionHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", tasks.ListTasks)
		r.Post("/tasks", tasks.CreateTask)
		r.Get("/tasks/{id}", tasks.GetTask)
		r.Delete("/tasks/{id}", tasks.DeleteTask)
		r.Put("/tasks/{id}/recurrence", tasks.UpdateRecurrence)
		r.Post("/tasks/{id}/complete", tasks.CompleteTask)
		r.Get("/tasks/{id}/occurrences", tasks.Occurrences)
		r.Get("/agenda", schedule.Agenda)
		r.Post("/schedule/rebalance", schedule.Rebalance)
		r.Post("/schedule/preview", schedule.Preview)
		r.Post("/schedule/rollover", schedule.Rollover)
		r.Post("/suggestions", suggestions.Suggest)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(shared.WithTraceID(req.Context(), "test-trace-id"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func sampleTask(t *testing.T, name, room string, freq domain.Frequency, day *int, minutes int) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(name, room, freq, day, minutes)
	require.NoError(t, err)
	task.CreatedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	task.UpdatedAt = task.CreatedAt
	return task
}
