package repositories

import (
	"commute-planner/internal/domain"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var scheduleNameRe = regexp.MustCompile(`^[\w-]+$`)

// DirScheduleRepository serves schedule documents stored as <name>.commute
// files in a directory. UpdatedAt is the file's modification time.
type DirScheduleRepository struct {
	Dir string
}

func NewDirScheduleRepository(dir string) *DirScheduleRepository {
	return &DirScheduleRepository{Dir: dir}
}

func (d *DirScheduleRepository) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("list schedules: read dir %q: %w", d.Dir, err)
	}

	out := make([]domain.Schedule, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ScheduleExt {
			continue
		}

		name := strings.TrimSuffix(e.Name(), ScheduleExt)
		if !scheduleNameRe.MatchString(name) {
			continue
		}

		s, err := d.GetSchedule(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		out = append(out, *s)
	}

	slices.SortFunc(out, func(a, b domain.Schedule) int { return strings.Compare(a.Name, b.Name) })

	return out, nil
}

func (d *DirScheduleRepository) GetSchedule(ctx context.Context, name string) (*domain.Schedule, error) {
	if !scheduleNameRe.MatchString(name) {
		return nil, fmt.Errorf("get schedule %q: invalid name: %w", name, domain.ErrScheduleNotFound)
	}

	path := d.path(name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get schedule %q: %w", name, domain.ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: stat: %w", name, err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("get schedule %q: read: %w", name, err)
	}

	return &domain.Schedule{
		Name:      name,
		Source:    string(bytes),
		UpdatedAt: info.ModTime(),
	}, nil
}

// SaveSchedule writes the document to <dir>/<name>.commute. A non-zero
// UpdatedAt is applied as the file's modification time.
func (d *DirScheduleRepository) SaveSchedule(ctx context.Context, s domain.Schedule) error {
	if !scheduleNameRe.MatchString(s.Name) {
		return fmt.Errorf("save schedule: invalid name %q", s.Name)
	}

	path := d.path(s.Name)
	if err := os.WriteFile(path, []byte(s.Source), 0o644); err != nil {
		return fmt.Errorf("save schedule %q: write: %w", s.Name, err)
	}

	if !s.UpdatedAt.IsZero() {
		if err := os.Chtimes(path, s.UpdatedAt, s.UpdatedAt); err != nil {
			return fmt.Errorf("save schedule %q: set mtime: %w", s.Name, err)
		}
	}

	return nil
}

func (d *DirScheduleRepository) path(name string) string {
	return filepath.Join(d.Dir, name+ScheduleExt)
}
