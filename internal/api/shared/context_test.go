package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)

	assert.Len(t, traceID, TraceIDLength*2)
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())), "trace IDs should be unique")
}

func TestGetTraceIDMissing(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetTraceID(context.WithValue(context.Background(), TraceIDKey, 42)))
}

func TestTraceIDFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "no header", header: "", keep: false},
		{name: "well formed", header: "abc-123-def-456", keep: true},
		{name: "too short", header: "abc", keep: false},
		{name: "injection attempt", header: "abc123456\nlevel=ERROR", keep: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(TraceIDHeader, tc.header)
			}

			got := TraceIDFromRequest(req)
			if tc.keep {
				assert.Equal(t, tc.header, got)
			} else {
				assert.NotEqual(t, tc.header, got)
				assert.Len(t, got, TraceIDLength*2)
			}
		})
	}
}
