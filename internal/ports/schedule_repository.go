package ports

import (
	"commute-planner/internal/domain"
	"context"
)

// Port: a boundary for retrieving stored schedule documents.
type ScheduleRepository interface {
	// Return every stored schedule, ordered by name.
	ListSchedules(ctx context.Context) ([]domain.Schedule, error)
	// Return the named schedule, or an error wrapping domain.ErrScheduleNotFound.
	GetSchedule(ctx context.Context, name string) (*domain.Schedule, error)
}

// Optional extension of ScheduleRepository for stores that accept writes.
type ScheduleStore interface {
	ScheduleRepository
	// Insert or replace a schedule by name.
	SaveSchedule(ctx context.Context, s domain.Schedule) error
}
