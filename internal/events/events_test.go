package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	id := uuid.New()
	event, err := NewEvent(TypeTaskCompleted, TaskCompletedPayload{
		TaskID:      id,
		Date:        "2024-01-03",
		NextDueDate: "2024-01-10",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeTaskCompleted, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload TaskCompletedPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, id, payload.TaskID)
	assert.Equal(t, "2024-01-10", payload.NextDueDate)
}

func TestNewEventUnencodablePayload(t *testing.T) {
	_, err := NewEvent(TypeTaskCreated, make(chan int))
	assert.Error(t, err)
}

func TestInMemoryEventEmitter(t *testing.T) {
	event, err := NewEvent(TypeScheduleRebalanced, ScheduleRebalancedPayload{Moved: 2})
	require.NoError(t, err)

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discardLogger())
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("delivers to every handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discardLogger())
		first, second := &recordingHandler{}, &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, []*Event{event}, first.events)
		assert.Equal(t, []*Event{event}, second.events)
	})

	t.Run("failing handler does not stop delivery", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(discardLogger())
		failErr := errors.New("handler error")
		failing := &recordingHandler{err: failErr}
		later := &recordingHandler{err: errors.New("second error")}
		ok := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(later)
		emitter.RegisterHandler(ok)

		err := emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, failErr)
		assert.Len(t, ok.events, 1)
		assert.Len(t, later.events, 1)
	})

	t.Run("handler func adapter", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		var seen string
		emitter.RegisterHandler(EventHandlerFunc(func(ctx context.Context, e *Event) error {
			seen = e.Type
			return nil
		}))
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, TypeScheduleRebalanced, seen)
	})
}

func TestLoggingHandler(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	h := NewLoggingHandler(slog.New(slog.NewJSONHandler(buf, nil)))

	event, err := NewEvent(TypeTaskDeleted, TaskPayload{TaskID: uuid.New(), Name: "Mop"})
	require.NoError(t, err)
	require.NoError(t, h.HandleEvent(context.Background(), event))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, TypeTaskDeleted, entries[0]["event_type"])
	assert.Equal(t, "event_log", entries[0]["component"])
	assert.Contains(t, entries[0]["payload"], `"name":"Mop"`)
}
