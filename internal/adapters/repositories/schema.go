package repositories

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/db"
	"commute-planner/internal/ports"
	"commute-planner/internal/schedule"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ScheduleExt is the file extension of schedule documents on disk.
const ScheduleExt = ".commute"

// Initialize the schedules table for the given driver.
func InitSchema(conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case db.DriverPostgres:
		statements = []string{`
		CREATE TABLE IF NOT EXISTS schedules (
			name TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		`}
	case db.DriverSQLite:
		// updated_at holds RFC 3339 text so ordering and parsing do not depend
		// on driver time conversions.
		statements = []string{`
		CREATE TABLE IF NOT EXISTS schedules (
			name TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		`}
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedFromDir stores every schedule document found in dir. Each file is
// checked against the line grammar first so a malformed seed is reported with
// its file name and line instead of surfacing at planning time.
func SeedFromDir(ctx context.Context, store ports.ScheduleStore, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+ScheduleExt))
	if err != nil {
		return 0, fmt.Errorf("seed schedules: glob %q: %w", dir, err)
	}
	slices.Sort(paths)

	seeds := make([]domain.Schedule, 0, len(paths))
	for _, p := range paths {
		bytes, err := os.ReadFile(p)
		if err != nil {
			return 0, fmt.Errorf("seed schedules: read %q: %w", p, err)
		}

		src := string(bytes)
		if _, err := schedule.ParseDocument(strings.Split(src, "\n")); err != nil {
			return 0, fmt.Errorf("seed schedules: %s: %w", filepath.Base(p), err)
		}

		seeds = append(seeds, domain.Schedule{
			Name:   strings.TrimSuffix(filepath.Base(p), ScheduleExt),
			Source: src,
		})
	}

	for _, s := range seeds {
		if err := store.SaveSchedule(ctx, s); err != nil {
			return 0, fmt.Errorf("seed schedules: %w", err)
		}
	}

	return len(seeds), nil
}
