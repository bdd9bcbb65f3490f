package domain

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskNameEmpty is returned when a task has no name.
	ErrTaskNameEmpty = errors.New("task name cannot be empty")

	// ErrTaskInvalidMinutes is returned when the effort estimate is not positive.
	ErrTaskInvalidMinutes = errors.New("estimated minutes must be greater than 0")

	// ErrTaskInvalidWeekday is returned when a week-based task has a scheduled day outside 0-6.
	ErrTaskInvalidWeekday = errors.New("scheduled day must be between 0 (Sunday) and 6 (Saturday)")

	// ErrTaskInvalidMonthDay is returned when a month-based task has a scheduled day outside 1-31.
	ErrTaskInvalidMonthDay = errors.New("scheduled day must be between 1 and 31")
)

// Task is a recurring household chore.
//
// Its occurrence set is fully determined by Frequency, ScheduledDay and
// AnchorDate. NextDueDate is a cached value derived from those fields and is
// also the fallback source when ScheduledDay or AnchorDate is unset.
type Task struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	RoomID           string    `json:"room_id"`
	Frequency        Frequency `json:"frequency"`
	ScheduledDay     *int      `json:"scheduled_day,omitempty"`
	AnchorDate       Date      `json:"anchor_date"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	NextDueDate      Date      `json:"next_due_date"`
	CompletedDates   []Date    `json:"completed_dates"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewTask creates a new Task with a fresh ID and creation timestamps.
// Returns an error if validation fails.
func NewTask(
	name string,
	roomID string,
	frequency Frequency,
	scheduledDay *int,
	estimatedMinutes int,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(name),
		RoomID:           strings.TrimSpace(roomID),
		Frequency:        frequency,
		ScheduledDay:     copyDay(scheduledDay),
		EstimatedMinutes: estimatedMinutes,
		CompletedDates:   []Date{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if strings.TrimSpace(t.Name) == "" {
		return ErrTaskNameEmpty
	}

	if !t.Frequency.IsValid() {
		return ErrInvalidFrequency
	}

	if t.EstimatedMinutes <= 0 {
		return ErrTaskInvalidMinutes
	}

	if t.ScheduledDay != nil {
		day := *t.ScheduledDay
		switch {
		case t.Frequency.IsWeekBased() && (day < 0 || day > 6):
			return ErrTaskInvalidWeekday
		case t.Frequency.IsMonthBased() && (day < 1 || day > 31):
			return ErrTaskInvalidMonthDay
		}
	}

	return nil
}

// FallbackDate is the date used when ScheduledDay or AnchorDate is unset:
// the last known due date, or the creation date when there is none.
func (t *Task) FallbackDate() Date {
	if !t.NextDueDate.IsZero() {
		return t.NextDueDate
	}
	return DateOf(t.CreatedAt)
}

// EffectiveAnchor returns AnchorDate, or FallbackDate when no anchor is set.
func (t *Task) EffectiveAnchor() Date {
	if !t.AnchorDate.IsZero() {
		return t.AnchorDate
	}
	return t.FallbackDate()
}

// IsCompletedOn reports whether the occurrence on d was marked done.
func (t *Task) IsCompletedOn(d Date) bool {
	for _, c := range t.CompletedDates {
		if c.Equal(d) {
			return true
		}
	}
	return false
}

// MarkCompleted records a completion on d. Recording the same date twice is a no-op.
// CompletedDates is kept in ascending order.
func (t *Task) MarkCompleted(d Date) {
	if t.IsCompletedOn(d) {
		return
	}
	t.CompletedDates = append(t.CompletedDates, d)
	slices.SortFunc(t.CompletedDates, Date.Compare)
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.ScheduledDay = copyDay(t.ScheduledDay)
	c.CompletedDates = slices.Clone(t.CompletedDates)
	return &c
}

// IntPtr is a helper for building optional scheduled days.
func IntPtr(v int) *int {
	return &v
}

func copyDay(day *int) *int {
	if day == nil {
		return nil
	}
	v := *day
	return &v
}
