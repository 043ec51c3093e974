package dto

import "time"

type ScheduleSummaryResponse struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListSchedulesResponse struct {
	Schedules []ScheduleSummaryResponse `json:"schedules"`
}

type ScheduleResponse struct {
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}
