package handlers

import (
	"commute-planner/internal/api/dto"
	"commute-planner/internal/domain"
	"commute-planner/internal/services"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxScheduleBytes bounds the size of an uploaded schedule document.
const maxScheduleBytes = 1 << 20

// Plan parses the schedule document in the request body and returns its
// ranked itineraries. Nothing is stored.
func Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScheduleBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Schedule) == "" {
		writeError(w, r, http.StatusBadRequest, "schedule is required")
		return
	}

	plan, err := services.PlanCommute(r.Context(), services.PlanCommuteRequest{
		Lines: strings.Split(req.Schedule, "\n"),
		From:  domain.Location(req.From),
		To:    domain.Location(req.To),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
}
