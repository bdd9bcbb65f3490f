package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/chorely-api/internal/api"
	apiMiddleware "github.com/phrazzld/chorely-api/internal/api/middleware"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/service"
)

// setupRouter builds the HTTP router for the task service.
func setupRouter(taskService service.TaskService, today func() domain.Date, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(middleware.Recoverer)

	tasks := api.NewTaskHandler(taskService, logger)
	schedule := api.NewScheduleHandler(taskService, today, logger)
	suggestions := api.NewSuggestionHandler(taskService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tasks", tasks.ListTasks)
		r.Post("/tasks", tasks.CreateTask)
		r.Get("/tasks/{id}", tasks.GetTask)
		r.Delete("/tasks/{id}", tasks.DeleteTask)
		r.Put("/tasks/{id}/recurrence", tasks.UpdateRecurrence)
		r.Post("/tasks/{id}/complete", tasks.CompleteTask)
		r.Get("/tasks/{id}/occurrences", tasks.Occurrences)

		r.Get("/agenda", schedule.Agenda)
		r.Post("/schedule/rebalance", schedule.Rebalance)
		r.Post("/schedule/preview", schedule.Preview)
		r.Post("/schedule/rollover", schedule.Rollover)

		r.Post("/suggestions", suggestions.Suggest)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
