package repositories

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLScheduleRepository is a Postgres-backed implementation of the
// ScheduleStore port.
type SQLScheduleRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLScheduleRepository(db *sql.DB) *SQLScheduleRepository {
	return &SQLScheduleRepository{DB: db, now: time.Now}
}

func (s *SQLScheduleRepository) ListSchedules(ctx context.Context) (_ []domain.Schedule, err error) {
	defer obs.Time(ctx, "schedules.sql.ListSchedules")(&err)

	if s.DB == nil {
		return nil, errors.New("schedule repository: db is nil")
	}

	q := `
	SELECT name, source, updated_at
    FROM schedules
    ORDER BY name;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list schedules: query schedules table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Schedule, 0, 16)
	for rows.Next() {
		var sched domain.Schedule
		if err := rows.Scan(&sched.Name, &sched.Source, &sched.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list schedules: scan rows: %w", err)
		}
		out = append(out, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLScheduleRepository) GetSchedule(ctx context.Context, name string) (_ *domain.Schedule, err error) {
	defer obs.Time(ctx, "schedules.sql.GetSchedule")(&err)

	if s.DB == nil {
		return nil, errors.New("schedule repository: db is nil")
	}

	q := `
	SELECT source, updated_at
    FROM schedules
    WHERE name = $1;
	`

	sched := domain.Schedule{Name: name}
	err = s.DB.QueryRowContext(ctx, q, name).Scan(&sched.Source, &sched.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get schedule %q: %w", name, domain.ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: query schedules table: %w", name, err)
	}

	return &sched, nil
}

// Upsert a schedule by name, stamping UpdatedAt when it is zero.
func (s *SQLScheduleRepository) SaveSchedule(ctx context.Context, sched domain.Schedule) (err error) {
	defer obs.Time(ctx, "schedules.sql.SaveSchedule")(&err)

	if s.DB == nil {
		return errors.New("schedule repository: db is nil")
	}

	if strings.TrimSpace(sched.Name) == "" {
		return errors.New("save schedule: name must not be empty")
	}

	if sched.UpdatedAt.IsZero() {
		sched.UpdatedAt = s.now()
	}

	q := `
	INSERT INTO schedules (name, source, updated_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (name) DO UPDATE
    SET source = EXCLUDED.source,
        updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, sched.Name, sched.Source, sched.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("save schedule %q: upsert: %w", sched.Name, err)
	}

	return nil
}
