package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/service"
)

// CreateTaskRequest defines the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Name             string      `json:"name"              validate:"required,max=200"`
	RoomID           string      `json:"room_id"           validate:"max=100"`
	Frequency        string      `json:"frequency"         validate:"required"`
	ScheduledDay     *int        `json:"scheduled_day"     validate:"omitempty,min=0,max=31"`
	AnchorDate       domain.Date `json:"anchor_date"`
	EstimatedMinutes int         `json:"estimated_minutes" validate:"required,gt=0,lte=1440"`
}

// UpdateRecurrenceRequest defines the payload for PUT /api/tasks/{id}/recurrence.
type UpdateRecurrenceRequest struct {
	Frequency    string      `json:"frequency"     validate:"required"`
	ScheduledDay *int        `json:"scheduled_day" validate:"omitempty,min=0,max=31"`
	AnchorDate   domain.Date `json:"anchor_date"`
}

// CompleteTaskRequest defines the optional payload for POST /api/tasks/{id}/complete.
// A missing date means today.
type CompleteTaskRequest struct {
	Date domain.Date `json:"date"`
}

// RebalanceRequest defines the optional payload for POST /api/schedule/rebalance.
type RebalanceRequest struct {
	AvailableDays []int `json:"available_days" validate:"max=7,dive,min=0,max=6"`
}

// PreviewTask is one task of a preview request. It needs no ID.
type PreviewTask struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	RoomID           string    `json:"room_id"`
	Frequency        string    `json:"frequency"         validate:"required"`
	ScheduledDay     *int      `json:"scheduled_day"`
	EstimatedMinutes int       `json:"estimated_minutes" validate:"gte=0"`
}

// PreviewRequest defines the payload for POST /api/schedule/preview.
type PreviewRequest struct {
	Tasks         []PreviewTask `json:"tasks"          validate:"required,min=1,max=500,dive"`
	AvailableDays []int         `json:"available_days" validate:"max=7,dive,min=0,max=6"`
}

// SuggestionsRequest defines the payload for POST /api/suggestions.
type SuggestionsRequest struct {
	RoomID        string   `json:"room_id"        validate:"required,max=100"`
	ExistingTasks []string `json:"existing_tasks" validate:"max=100"`
	Max           int      `json:"max"            validate:"gte=0,lte=20"`
}

// TaskResponse is the API form of a task.
type TaskResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	RoomID           string        `json:"room_id"`
	Frequency        string        `json:"frequency"`
	ScheduledDay     *int          `json:"scheduled_day"`
	AnchorDate       domain.Date   `json:"anchor_date"`
	EstimatedMinutes int           `json:"estimated_minutes"`
	NextDueDate      domain.Date   `json:"next_due_date"`
	CompletedDates   []domain.Date `json:"completed_dates"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// TaskListResponse wraps GET /api/tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// AgendaItemResponse is one entry of an agenda.
type AgendaItemResponse struct {
	Task      TaskResponse `json:"task"`
	Completed bool         `json:"completed"`
}

// AgendaResponse is the response of GET /api/agenda.
type AgendaResponse struct {
	Date  domain.Date          `json:"date"`
	Items []AgendaItemResponse `json:"items"`
	// TotalMinutes sums the estimates of the items not yet completed.
	TotalMinutes int `json:"total_minutes"`
}

// OccurrencesResponse is the response of GET /api/tasks/{id}/occurrences.
type OccurrencesResponse struct {
	TaskID string        `json:"task_id"`
	Start  domain.Date   `json:"start"`
	End    domain.Date   `json:"end"`
	Dates  []domain.Date `json:"dates"`
}

// RolloverResponse is the response of POST /api/schedule/rollover.
type RolloverResponse struct {
	Today   domain.Date `json:"today"`
	Updated int         `json:"updated"`
}

// SuggestionsResponse is the response of POST /api/suggestions.
type SuggestionsResponse struct {
	Suggestions []generation.Suggestion `json:"suggestions"`
}

// RebalanceResponse is the response of the schedule endpoints.
type RebalanceResponse = service.RebalanceResult

func taskToResponse(task *domain.Task) TaskResponse {
	completed := task.CompletedDates
	if completed == nil {
		completed = []domain.Date{}
	}
	return TaskResponse{
		ID:               task.ID.String(),
		Name:             task.Name,
		RoomID:           task.RoomID,
		Frequency:        string(task.Frequency),
		ScheduledDay:     task.ScheduledDay,
		AnchorDate:       task.AnchorDate,
		EstimatedMinutes: task.EstimatedMinutes,
		NextDueDate:      task.NextDueDate,
		CompletedDates:   completed,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return TaskListResponse{Tasks: out}
}

// toDomainTask converts a preview entry. A missing ID gets a fresh one so the
// scheduler can report an assignment for it.
func (p PreviewTask) toDomainTask() *domain.Task {
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &domain.Task{
		ID:               id,
		Name:             p.Name,
		RoomID:           p.RoomID,
		Frequency:        domain.Frequency(p.Frequency),
		ScheduledDay:     p.ScheduledDay,
		EstimatedMinutes: p.EstimatedMinutes,
	}
}
