package repositories

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/db"
	"commute-planner/internal/ports"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekday = "home macewan\nf home busstop 5\nt busstop 7:00 legislature 7:35\nf legislature macewan 15\n"

func newSqliteRepo(t *testing.T) *SqliteScheduleRepository {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(conn, db.DriverSQLite))
	// Running it twice must be harmless.
	require.NoError(t, InitSchema(conn, db.DriverSQLite))

	return NewSqliteScheduleRepository(conn)
}

// exerciseStore runs the same contract against every ScheduleStore.
func exerciseStore(t *testing.T, store ports.ScheduleStore) {
	ctx := context.Background()

	list, err := store.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = store.GetSchedule(ctx, "weekday")
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	at := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveSchedule(ctx, domain.Schedule{Name: "weekday", Source: weekday, UpdatedAt: at}))
	require.NoError(t, store.SaveSchedule(ctx, domain.Schedule{Name: "alt", Source: "a b\nf a b 1\n"}))

	got, err := store.GetSchedule(ctx, "weekday")
	require.NoError(t, err)
	assert.Equal(t, "weekday", got.Name)
	assert.Equal(t, weekday, got.Source)
	assert.True(t, at.Equal(got.UpdatedAt), "updated_at %v != %v", got.UpdatedAt, at)

	list, err = store.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alt", list[0].Name)
	assert.Equal(t, "weekday", list[1].Name)
	assert.False(t, list[0].UpdatedAt.IsZero())

	// Saving again replaces the document.
	later := at.Add(time.Hour)
	require.NoError(t, store.SaveSchedule(ctx, domain.Schedule{Name: "weekday", Source: "x y\n", UpdatedAt: later}))
	got, err = store.GetSchedule(ctx, "weekday")
	require.NoError(t, err)
	assert.Equal(t, "x y\n", got.Source)
	assert.True(t, later.Equal(got.UpdatedAt))

	assert.Error(t, store.SaveSchedule(ctx, domain.Schedule{Name: " "}))
}

func TestSqliteScheduleRepository(t *testing.T) {
	exerciseStore(t, newSqliteRepo(t))
}

func TestMemoryScheduleRepository(t *testing.T) {
	exerciseStore(t, NewMemoryScheduleRepository())
}

func TestDirScheduleRepository(t *testing.T) {
	exerciseStore(t, NewDirScheduleRepository(t.TempDir()))
}

func TestDirScheduleRepositoryRejectsPaths(t *testing.T) {
	repo := NewDirScheduleRepository(t.TempDir())

	_, err := repo.GetSchedule(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	err = repo.SaveSchedule(context.Background(), domain.Schedule{Name: "a/b", Source: "x y"})
	assert.Error(t, err)
}

func TestDirScheduleRepositoryIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.commute"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekday.commute"), []byte(weekday), 0o644))

	list, err := NewDirScheduleRepository(dir).ListSchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "weekday", list[0].Name)
}

func TestSeedFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekday.commute"), []byte(weekday), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weekend.commute"), []byte("# lazy\nhome park\nf home park 20\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a schedule"), 0o644))

	repo := newSqliteRepo(t)
	n, err := SeedFromDir(context.Background(), repo, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.GetSchedule(context.Background(), "weekend")
	require.NoError(t, err)
	assert.Contains(t, got.Source, "f home park 20")
}

func TestSeedFromDirRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.commute"), []byte(weekday), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zbad.commute"), []byte("home work\nwalk home work\n"), 0o644))

	repo := NewMemoryScheduleRepository()
	_, err := SeedFromDir(context.Background(), repo, dir)
	require.ErrorIs(t, err, domain.ErrSyntax)
	assert.Contains(t, err.Error(), "zbad.commute")

	list, err := repo.ListSchedules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "nothing is stored when a seed is malformed")
}

func TestInitSchemaRejectsUnknownDriver(t *testing.T) {
	conn, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	assert.ErrorContains(t, InitSchema(conn, "oracle"), "unsupported driver")
	assert.Error(t, InitSchema(nil, db.DriverSQLite))
}
