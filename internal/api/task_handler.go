package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/service"
	"github.com/phrazzld/chorely-api/internal/store"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req, false, log) {
		return
	}
	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		Name:             req.Name,
		RoomID:           req.RoomID,
		Frequency:        frequency,
		ScheduledDay:     req.ScheduledDay,
		AnchorDate:       req.AnchorDate,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks?room=&frequency=.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter := store.TaskFilter{RoomID: r.URL.Query().Get("room")}
	if raw := r.URL.Query().Get("frequency"); raw != "" {
		frequency, err := domain.ParseFrequency(raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		filter.Frequency = frequency
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateRecurrence handles PUT /api/tasks/{id}/recurrence.
func (h *TaskHandler) UpdateRecurrence(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, log)
	if !ok {
		return
	}

	var req UpdateRecurrenceRequest
	if !decodeAndValidate(w, r, &req, false, log) {
		return
	}
	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.UpdateRecurrence(r.Context(), id, service.RecurrenceUpdate{
		Frequency:    frequency,
		ScheduledDay: req.ScheduledDay,
		AnchorDate:   req.AnchorDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task recurrence")
		return
	}

	log.Debug("task recurrence updated",
		slog.String("task_id", id.String()),
		slog.String("frequency", string(frequency)))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CompleteTask handles POST /api/tasks/{id}/complete. The body is optional.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, log)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if !decodeAndValidate(w, r, &req, true, log) {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), id, req.Date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Occurrences handles GET /api/tasks/{id}/occurrences?start=&end=.
func (h *TaskHandler) Occurrences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id, ok := handlePathUUID(w, r, log)
	if !ok {
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	dates, err := h.taskService.Occurrences(r.Context(), id, start, end)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list occurrences")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, OccurrencesResponse{
		TaskID: id.String(),
		Start:  start,
		End:    end,
		Dates:  dates,
	})
}
