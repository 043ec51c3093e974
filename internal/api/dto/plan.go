package dto

type PlanRequest struct {
	Schedule string `json:"schedule"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type LegResponse struct {
	Kind    string `json:"kind"`
	From    string `json:"from"`
	To      string `json:"to"`
	Depart  string `json:"depart,omitempty"`
	Arrive  string `json:"arrive,omitempty"`
	Minutes int    `json:"minutes"`
}

type ItineraryResponse struct {
	Elapsed        string        `json:"elapsed"`
	ElapsedMinutes int           `json:"elapsed_minutes"`
	Departure      string        `json:"departure"`
	Arrival        string        `json:"arrival,omitempty"`
	Stops          []string      `json:"stops"`
	Legs           []LegResponse `json:"legs"`
}

type PlanResponse struct {
	Schedule    string              `json:"schedule,omitempty"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Itineraries []ItineraryResponse `json:"itineraries"`
}

type ScheduleResultResponse struct {
	Name  string        `json:"name"`
	Plan  *PlanResponse `json:"plan,omitempty"`
	Error string        `json:"error,omitempty"`
}

type ListScheduleResultsResponse struct {
	Results []ScheduleResultResponse `json:"results"`
}
