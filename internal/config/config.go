// Package config loads settings from an optional YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `yaml:"url" validate:"required"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type GraphCacheConfig struct {
	Size int           `yaml:"size" validate:"gt=0"`
	TTL  time.Duration `yaml:"ttl" validate:"gte=0"`
}

// Config is the root configuration of the server and tools. When
// ScheduleDir is set, schedules are served from its *.commute files instead
// of the database.
type Config struct {
	Port        string           `yaml:"port" validate:"required,numeric"`
	DB          DBConfig         `yaml:"db"`
	ScheduleDir string           `yaml:"schedule_dir"`
	SeedDir     string           `yaml:"seed_dir"`
	Log         LogConfig        `yaml:"log"`
	GraphCache  GraphCacheConfig `yaml:"graph_cache"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Port: "8080",
		DB: DBConfig{
			Driver: "sqlite",
			URL:    "data/commute.db",
		},
		SeedDir: "data/schedules",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		GraphCache: GraphCacheConfig{
			Size: 128,
			TTL:  10 * time.Minute,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. Environment variables (including those from .env) win over
// the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found (using environment variables)")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cfg against its field constraints.
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = Get("PORT", cfg.Port)
	cfg.DB.Driver = Get("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.URL = Get("DATABASE_URL", cfg.DB.URL)
	cfg.ScheduleDir = Get("SCHEDULE_DIR", cfg.ScheduleDir)
	cfg.SeedDir = Get("SEED_DIR", cfg.SeedDir)
	cfg.Log.Level = strings.ToLower(Get("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(Get("LOG_FORMAT", cfg.Log.Format))

	if v := Get("GRAPH_CACHE_SIZE", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRAPH_CACHE_SIZE: %w", err)
		}
		cfg.GraphCache.Size = n
	}

	if v := Get("GRAPH_CACHE_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GRAPH_CACHE_TTL: %w", err)
		}
		cfg.GraphCache.TTL = d
	}

	return nil
}

// Get returns the value of the environment variable key, or fallback when it
// is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
