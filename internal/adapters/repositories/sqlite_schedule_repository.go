package repositories

import (
	"commute-planner/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the ScheduleStore port.
type SqliteScheduleRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteScheduleRepository(db *sql.DB) *SqliteScheduleRepository {
	return &SqliteScheduleRepository{DB: db, now: time.Now}
}

// Return all stored schedules ordered by name.
func (s *SqliteScheduleRepository) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		name,
		source,
		updated_at
	FROM schedules
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: query schedules table: %w", err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0, 16)
	for rows.Next() {
		var name, source, updated string
		if err := rows.Scan(&name, &source, &updated); err != nil {
			return nil, fmt.Errorf("list schedules: scan row: %w", err)
		}

		at, err := time.Parse(time.RFC3339Nano, updated)
		if err != nil {
			return nil, fmt.Errorf("list schedules: %q: parse updated_at: %w", name, err)
		}
		schedules = append(schedules, domain.Schedule{Name: name, Source: source, UpdatedAt: at})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: row iteration: %w", err)
	}

	return schedules, nil
}

func (s *SqliteScheduleRepository) GetSchedule(ctx context.Context, name string) (*domain.Schedule, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite schedule repository: DB is nil")
	}

	query := `
	SELECT
		source,
		updated_at
	FROM schedules
	WHERE name = ?;
	`

	var source, updated string
	err := s.DB.QueryRowContext(ctx, query, name).Scan(&source, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get schedule %q: %w", name, domain.ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: query schedules table: %w", name, err)
	}

	at, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: parse updated_at: %w", name, err)
	}

	return &domain.Schedule{Name: name, Source: source, UpdatedAt: at}, nil
}

// Insert or replace a schedule, stamping UpdatedAt when it is zero.
func (s *SqliteScheduleRepository) SaveSchedule(ctx context.Context, sched domain.Schedule) error {
	if s.DB == nil {
		return errors.New("sqlite schedule repository: DB is nil")
	}

	if strings.TrimSpace(sched.Name) == "" {
		return errors.New("save schedule: name must not be empty")
	}

	if sched.UpdatedAt.IsZero() {
		sched.UpdatedAt = s.now()
	}

	query := `
	INSERT OR REPLACE INTO schedules (
		name,
		source,
		updated_at
	)
	VALUES (?, ?, ?);
	`
	updated := sched.UpdatedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, query, sched.Name, sched.Source, updated); err != nil {
		return fmt.Errorf("save schedule %q: %w", sched.Name, err)
	}

	return nil
}
