package handlers

import (
	"commute-planner/internal/api/dto"
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/obs"
	"commute-planner/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Error("encode failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps planning errors onto HTTP statuses. Client mistakes
// carry their message; anything else is logged and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch status := statusFor(err); status {
	case http.StatusInternalServerError:
		obs.Logger(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, status, "internal server error")
	default:
		writeError(w, r, status, err.Error())
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrScheduleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownLocation):
		return http.StatusBadRequest
	case isDocumentError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isDocumentError(err error) bool {
	for _, target := range []error{
		domain.ErrSyntax,
		domain.ErrInvalidDuration,
		domain.ErrInvalidTimeFormat,
		domain.ErrInvalidTimeOrder,
		domain.ErrRoutesBeforeHeader,
		domain.ErrMissingHeader,
		domain.ErrDuplicateHeader,
		domain.ErrUnexpectedEntry,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toPlanResponse(p *services.CommutePlan) dto.PlanResponse {
	res := dto.PlanResponse{
		Schedule:    p.Schedule,
		From:        string(p.From),
		To:          string(p.To),
		Itineraries: make([]dto.ItineraryResponse, 0, len(p.Itineraries)),
	}
	for _, it := range p.Itineraries {
		res.Itineraries = append(res.Itineraries, toItineraryResponse(it))
	}
	return res
}

func toItineraryResponse(it domain.Itinerary) dto.ItineraryResponse {
	res := dto.ItineraryResponse{
		Elapsed:        domain.FormatDuration(it.Elapsed()),
		ElapsedMinutes: int(it.Elapsed() / time.Minute),
		Departure:      "anytime",
		Stops:          make([]string, 0, len(it.Legs)),
		Legs:           make([]dto.LegResponse, 0, len(it.Legs)),
	}
	if dep, ok := it.Departure(); ok {
		res.Departure = dep.String()
	}
	if arr, ok := it.Arrival(); ok {
		res.Arrival = arr.String()
	}

	for _, leg := range it.Legs {
		l := dto.LegResponse{
			Kind:    leg.Kind.String(),
			From:    string(leg.Origin()),
			To:      string(leg.Destination()),
			Minutes: int(leg.Duration() / time.Minute),
		}
		if leg.Kind == domain.KindTimed {
			l.Depart = leg.Timed.StartTime.String()
			l.Arrive = leg.Timed.DestTime.String()
		}
		res.Legs = append(res.Legs, l)
		res.Stops = append(res.Stops, string(leg.Destination()))
	}

	return res
}

// splitList parses a comma separated query value.
func splitList(v string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
