package repositories

import (
	"commute-planner/internal/domain"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// In-memory implementation of the ScheduleStore port.
type MemoryScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]domain.Schedule
	now       func() time.Time
}

func NewMemoryScheduleRepository(schedules ...domain.Schedule) *MemoryScheduleRepository {
	m := make(map[string]domain.Schedule, len(schedules))
	for _, s := range schedules {
		m[s.Name] = s
	}
	return &MemoryScheduleRepository{schedules: m, now: time.Now}
}

func (m *MemoryScheduleRepository) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.Schedule) int { return strings.Compare(a.Name, b.Name) })

	return out, nil
}

func (m *MemoryScheduleRepository) GetSchedule(ctx context.Context, name string) (*domain.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[name]
	if !ok {
		return nil, fmt.Errorf("get schedule %q: %w", name, domain.ErrScheduleNotFound)
	}
	return &s, nil
}

// SaveSchedule stores s, stamping UpdatedAt when it is zero.
func (m *MemoryScheduleRepository) SaveSchedule(ctx context.Context, s domain.Schedule) error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("save schedule: name must not be empty")
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.Name] = s

	return nil
}
