package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/service"
)

// ScheduleHandler handles agenda and weekly balancing requests.
type ScheduleHandler struct {
	taskService service.TaskService
	clock       func() domain.Date
	logger      *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler. today supplies the
// current date for responses that echo it.
func NewScheduleHandler(taskService service.TaskService, today func() domain.Date, logger *slog.Logger) *ScheduleHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for ScheduleHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ScheduleHandler")
	}
	if today == nil {
		today = func() domain.Date { return domain.Today(nil) }
	}

	return &ScheduleHandler{
		taskService: taskService,
		clock:       today,
		logger:      logger.With(slog.String("component", "schedule_handler")),
	}
}

// Agenda handles GET /api/agenda?date=. A missing date means today.
func (h *ScheduleHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if date.IsZero() {
		date = h.clock()
	}

	items, err := h.taskService.Agenda(r.Context(), date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load agenda")
		return
	}

	resp := AgendaResponse{Date: date, Items: make([]AgendaItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, AgendaItemResponse{
			Task:      taskToResponse(item.Task),
			Completed: item.Completed,
		})
		if !item.Completed {
			resp.TotalMinutes += item.Task.EstimatedMinutes
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Rebalance handles POST /api/schedule/rebalance. The body is optional; no
// available_days means the configured days.
func (h *ScheduleHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RebalanceRequest
	if !decodeAndValidate(w, r, &req, true, log) {
		return
	}

	result, err := h.taskService.RebalanceSchedule(r.Context(), req.AvailableDays)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rebalance schedule")
		return
	}

	log.Info("schedule rebalanced via API", slog.Int("moved", result.Moved))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Preview handles POST /api/schedule/preview. Nothing is persisted.
func (h *ScheduleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PreviewRequest
	if !decodeAndValidate(w, r, &req, false, log) {
		return
	}

	tasks := make([]*domain.Task, 0, len(req.Tasks))
	for _, p := range req.Tasks {
		frequency, err := domain.ParseFrequency(p.Frequency)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		task := p.toDomainTask()
		task.Frequency = frequency
		tasks = append(tasks, task)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.taskService.PreviewSchedule(tasks, req.AvailableDays))
}

// Rollover handles POST /api/schedule/rollover, running the daily rollover now.
func (h *ScheduleHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	today := h.clock()
	updated, err := h.taskService.Rollover(r.Context(), today)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to roll over due dates")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, RolloverResponse{Today: today, Updated: updated})
}
