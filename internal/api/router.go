package api

import (
	"commute-planner/internal/api/handlers"
	"commute-planner/internal/ports"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.ScheduleRepository, cache ports.GraphCache, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowed = http.HandlerFunc(handlers.MethodNotAllowed)

	scheduleHandler := &handlers.ScheduleHandler{Repo: repo, Cache: cache}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)
	router.HandlerFunc(http.MethodGet, "/schedules", scheduleHandler.List)
	router.HandlerFunc(http.MethodGet, "/schedules/:name", scheduleHandler.Get)
	router.HandlerFunc(http.MethodGet, "/schedules/:name/itineraries", scheduleHandler.Itineraries)
	router.HandlerFunc(http.MethodGet, "/itineraries", scheduleHandler.Compare)
	router.HandlerFunc(http.MethodPost, "/plans", handlers.Plan)

	return requestIDMiddleware(logger, loggingMiddleware(router))
}
