package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by AsyncDispatcher.
var (
	ErrDispatcherClosed = errors.New("event dispatcher is closed")
	ErrDispatcherFull   = errors.New("event dispatcher queue is full")
)

// DispatcherConfig holds configuration options for AsyncDispatcher.
type DispatcherConfig struct {
	// WorkerCount is the number of delivery goroutines. Defaults to 1.
	WorkerCount int
	// QueueSize is the buffer of pending events. Defaults to 64.
	QueueSize int
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{WorkerCount: 2, QueueSize: 64}
}

type queuedEvent struct {
	ctx   context.Context
	event *Event
}

// AsyncDispatcher is an EventHandler that hands events to a worker pool, so
// slow handlers never hold up the operation that emitted the event.
type AsyncDispatcher struct {
	next        EventHandler
	queue       chan queuedEvent
	workerCount int
	logger      *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsyncDispatcher starts a worker pool that delivers events to next.
func NewAsyncDispatcher(next EventHandler, cfg DispatcherConfig, logger *slog.Logger) *AsyncDispatcher {
	if next == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("next handler cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "event_dispatcher")

	workers := cfg.WorkerCount
	if workers <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", cfg.WorkerCount,
			"default_count", 1)
		workers = 1
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultDispatcherConfig().QueueSize
	}

	d := &AsyncDispatcher{
		next:        next,
		queue:       make(chan queuedEvent, size),
		workerCount: workers,
		logger:      logger,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	return d
}

// HandleEvent enqueues event without blocking. The context passed to the
// downstream handler keeps ctx's values but not its cancellation.
func (d *AsyncDispatcher) HandleEvent(ctx context.Context, event *Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		d.logger.Debug("event enqueued",
			"event_id", event.ID,
			"event_type", event.Type,
			"queue_len", len(d.queue))
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrDispatcherFull, cap(d.queue))
	}
}

// Close stops accepting events and waits for queued ones to be delivered,
// or for ctx to expire.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("event dispatcher stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event dispatcher drain: %w", ctx.Err())
	}
}

func (d *AsyncDispatcher) worker(id int) {
	defer d.wg.Done()
	for item := range d.queue {
		if err := d.next.HandleEvent(item.ctx, item.event); err != nil {
			d.logger.Error("async handler failed to process event",
				"error", err,
				"worker_id", id,
				"event_id", item.event.ID,
				"event_type", item.event.Type)
		}
	}
}
