package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the task service.
const (
	TypeTaskCreated        = "task.created"
	TypeTaskCompleted      = "task.completed"
	TypeTaskDeleted        = "task.deleted"
	TypeTaskRescheduled    = "task.rescheduled"
	TypeScheduleRebalanced = "schedule.rebalanced"
	TypeDueDatesRolledOver = "schedule.rolled_over"
)

// Event is a notification that something happened to a task or the schedule.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TaskCompletedPayload is the payload of a task.completed event.
type TaskCompletedPayload struct {
	TaskID      uuid.UUID `json:"task_id"`
	Date        string    `json:"date"`
	NextDueDate string    `json:"next_due_date"`
}

// ScheduleRebalancedPayload is the payload of a schedule.rebalanced event.
type ScheduleRebalancedPayload struct {
	AvailableDays []int       `json:"available_days"`
	Moved         int         `json:"moved"`
	DayLoads      map[int]int `json:"day_loads"`
}

// TaskPayload is the payload of the single-task lifecycle events.
type TaskPayload struct {
	TaskID uuid.UUID `json:"task_id"`
	Name   string    `json:"name,omitempty"`
	RoomID string    `json:"room_id,omitempty"`
}

// RolledOverPayload is the payload of a schedule.rolled_over event.
type RolledOverPayload struct {
	Today   string `json:"today"`
	Updated int    `json:"updated"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
