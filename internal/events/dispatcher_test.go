package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingHandler holds every delivery until release is closed.
type blockingHandler struct {
	recordingHandler
	release chan struct{}
}

func (h *blockingHandler) HandleEvent(ctx context.Context, event *Event) error {
	<-h.release
	return h.recordingHandler.HandleEvent(ctx, event)
}

func TestAsyncDispatcherDeliversAllEvents(t *testing.T) {
	next := &recordingHandler{}
	d := NewAsyncDispatcher(next, DispatcherConfig{WorkerCount: 3, QueueSize: 10}, discardLogger())

	for i := 0; i < 5; i++ {
		event, err := NewEvent(TypeTaskCreated, TaskPayload{Name: "Dishes"})
		require.NoError(t, err)
		require.NoError(t, d.HandleEvent(context.Background(), event))
	}

	require.NoError(t, d.Close(context.Background()))
	next.mu.Lock()
	defer next.mu.Unlock()
	assert.Len(t, next.events, 5)
}

func TestAsyncDispatcherDetachesCancellation(t *testing.T) {
	next := &recordingHandler{}
	d := NewAsyncDispatcher(next, DefaultDispatcherConfig(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	event, err := NewEvent(TypeTaskDeleted, TaskPayload{Name: "Mop"})
	require.NoError(t, err)
	require.NoError(t, d.HandleEvent(ctx, event))
	cancel()

	require.NoError(t, d.Close(context.Background()))
	next.mu.Lock()
	defer next.mu.Unlock()
	assert.Len(t, next.events, 1)
}

func TestAsyncDispatcherQueueFull(t *testing.T) {
	next := &blockingHandler{release: make(chan struct{})}
	d := NewAsyncDispatcher(next, DispatcherConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	event, err := NewEvent(TypeTaskCreated, TaskPayload{Name: "Dust"})
	require.NoError(t, err)

	// The worker takes at most one event and blocks; the buffer holds one more.
	var full error
	for i := 0; i < 3 && full == nil; i++ {
		full = d.HandleEvent(context.Background(), event)
	}
	assert.True(t, errors.Is(full, ErrDispatcherFull))

	close(next.release)
	require.NoError(t, d.Close(context.Background()))
}

func TestAsyncDispatcherClosed(t *testing.T) {
	d := NewAsyncDispatcher(&recordingHandler{}, DispatcherConfig{}, discardLogger())
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	event, err := NewEvent(TypeTaskCreated, TaskPayload{Name: "Vacuum"})
	require.NoError(t, err)
	assert.ErrorIs(t, d.HandleEvent(context.Background(), event), ErrDispatcherClosed)
}

func TestAsyncDispatcherCloseTimeout(t *testing.T) {
	next := &blockingHandler{release: make(chan struct{})}
	defer close(next.release)
	d := NewAsyncDispatcher(next, DispatcherConfig{WorkerCount: 1, QueueSize: 4}, discardLogger())

	event, err := NewEvent(TypeTaskCreated, TaskPayload{Name: "Windows"})
	require.NoError(t, err)
	require.NoError(t, d.HandleEvent(context.Background(), event))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestNewAsyncDispatcherPanicsOnNilHandler(t *testing.T) {
	assert.Panics(t, func() { NewAsyncDispatcher(nil, DefaultDispatcherConfig(), nil) })
}
