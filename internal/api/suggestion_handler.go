package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/platform/logger"
	"github.com/phrazzld/chorely-api/internal/service"
)

// SuggestionHandler handles AI chore suggestion requests.
type SuggestionHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(taskService service.TaskService, logger *slog.Logger) *SuggestionHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for SuggestionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SuggestionHandler")
	}

	return &SuggestionHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "suggestion_handler")),
	}
}

// Suggest handles POST /api/suggestions.
func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SuggestionsRequest
	if !decodeAndValidate(w, r, &req, false, log) {
		return
	}

	suggestions, err := h.taskService.SuggestTasks(r.Context(), generation.SuggestionRequest{
		RoomID:        req.RoomID,
		ExistingTasks: req.ExistingTasks,
		Max:           req.Max,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []generation.Suggestion{}
	}

	log.Debug("suggestions generated",
		slog.String("room_id", req.RoomID),
		slog.Int("count", len(suggestions)))
	shared.RespondWithJSON(w, r, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}
