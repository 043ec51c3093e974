package handlers

import (
	"commute-planner/internal/api/dto"
	"commute-planner/internal/domain"
	"commute-planner/internal/ports"
	"commute-planner/internal/services"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// ScheduleHandler exposes stored schedules and planning over them.
type ScheduleHandler struct {
	Repo  ports.ScheduleRepository
	Cache ports.GraphCache
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Repo.ListSchedules(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListSchedulesResponse{
		Schedules: make([]dto.ScheduleSummaryResponse, 0, len(schedules)),
	}
	for _, s := range schedules {
		res.Schedules = append(res.Schedules, dto.ScheduleSummaryResponse{
			Name:      s.Name,
			UpdatedAt: s.UpdatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")

	s, err := h.Repo.GetSchedule(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ScheduleResponse{
		Name:      s.Name,
		UpdatedAt: s.UpdatedAt,
		Source:    s.Source,
	})
}

// Itineraries plans a stored schedule. The optional from and to query
// parameters override the schedule's header.
func (h *ScheduleHandler) Itineraries(w http.ResponseWriter, r *http.Request) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")
	q := r.URL.Query()

	plan, err := services.PlanStoredSchedule(
		r.Context(),
		name,
		domain.Location(q.Get("from")),
		domain.Location(q.Get("to")),
		h.Repo,
		h.Cache,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}

// Compare plans several stored schedules concurrently, each between its own
// header endpoints.
func (h *ScheduleHandler) Compare(w http.ResponseWriter, r *http.Request) {
	names := splitList(r.URL.Query().Get("schedules"))
	if len(names) == 0 {
		writeError(w, r, http.StatusBadRequest, "schedules is required")
		return
	}
	if len(names) > 20 {
		writeError(w, r, http.StatusBadRequest, "at most 20 schedules may be compared")
		return
	}

	results, err := services.PlanSchedules(r.Context(), services.PlanSchedulesRequest{Names: names}, h.Repo, h.Cache)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListScheduleResultsResponse{
		Results: make([]dto.ScheduleResultResponse, 0, len(results)),
	}
	for _, sr := range results {
		item := dto.ScheduleResultResponse{Name: sr.Name}
		if sr.Err != nil {
			if statusFor(sr.Err) == http.StatusInternalServerError {
				item.Error = "internal server error"
			} else {
				item.Error = sr.Err.Error()
			}
		} else {
			plan := toPlanResponse(sr.Plan)
			item.Plan = &plan
		}
		res.Results = append(res.Results, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
