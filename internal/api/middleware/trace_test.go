package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/chorely-api/internal/api/middleware"
	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seenTrace string
	handler := middleware.NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/x", nil)
	req.Header.Set(shared.TraceIDHeader, "client-trace-0001")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "client-trace-0001", seenTrace)
	assert.Equal(t, "client-trace-0001", rr.Header().Get(shared.TraceIDHeader))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "inside handler", entries[0]["msg"])
	assert.Equal(t, "client-trace-0001", entries[0]["trace_id"])
	assert.Equal(t, "request completed", entries[1]["msg"])
	assert.Equal(t, "WARN", entries[1]["level"])
	assert.EqualValues(t, http.StatusNotFound, entries[1]["status"])
}

func TestTraceMiddlewareGeneratesID(t *testing.T) {
	var seenTrace string
	handler := middleware.NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, seenTrace, shared.TraceIDLength*2)
	assert.Equal(t, seenTrace, rr.Header().Get(shared.TraceIDHeader))
}
