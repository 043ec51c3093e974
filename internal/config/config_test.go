package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DB_DRIVER", "DATABASE_URL", "SCHEDULE_DIR", "SEED_DIR",
	"LOG_LEVEL", "LOG_FORMAT", "GRAPH_CACHE_SIZE", "GRAPH_CACHE_TTL",
}

// clearEnv blanks every setting so the developer's shell does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := writeYAML(t, `
port: "9090"
db:
  driver: postgres
  url: postgres://commute@localhost/commute
schedule_dir: /srv/schedules
log:
  level: debug
  format: json
graph_cache:
  size: 16
  ttl: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://commute@localhost/commute", cfg.DB.URL)
	assert.Equal(t, "/srv/schedules", cfg.ScheduleDir)
	assert.Equal(t, "data/schedules", cfg.SeedDir, "unset keys keep their defaults")
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, GraphCacheConfig{Size: 16, TTL: 90 * time.Second}, cfg.GraphCache)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("GRAPH_CACHE_SIZE", "4")
	t.Setenv("GRAPH_CACHE_TTL", "0s")

	path := writeYAML(t, "port: \"9090\"\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.GraphCache.Size)
	assert.Equal(t, time.Duration(0), cfg.GraphCache.TTL)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "driver", env: map[string]string{"DB_DRIVER": "mysql"}, want: "Config.DB.Driver"},
		{name: "port", env: map[string]string{"PORT": "http"}, want: "Config.Port"},
		{name: "log format", env: map[string]string{"LOG_FORMAT": "xml"}, want: "Config.Log.Format"},
		{name: "cache size", env: map[string]string{"GRAPH_CACHE_SIZE": "0"}, want: "Config.GraphCache.Size"},
		{name: "cache size number", env: map[string]string{"GRAPH_CACHE_SIZE": "lots"}, want: "GRAPH_CACHE_SIZE"},
		{name: "cache ttl", env: map[string]string{"GRAPH_CACHE_TTL": "soon"}, want: "GRAPH_CACHE_TTL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeYAML(t, "port: [1, 2"))
	assert.ErrorContains(t, err, "parse")
}

func TestGet(t *testing.T) {
	t.Setenv("COMMUTE_TEST_KEY", "value")
	assert.Equal(t, "value", Get("COMMUTE_TEST_KEY", "fallback"))

	t.Setenv("COMMUTE_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("COMMUTE_TEST_KEY", "fallback"))
}
