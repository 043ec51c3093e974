package main

import (
	"commute-planner/internal/adapters/repositories"
	"commute-planner/internal/config"
	"commute-planner/internal/platform/db"
	"commute-planner/internal/platform/obs"
	"commute-planner/internal/ports"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// dbtool creates the schedules table and loads every *.commute file of the
// seed directory into the configured database.
func main() {
	configPath := flag.String("config", config.Get("CONFIG_FILE", ""), "optional YAML config file")
	seedDir := flag.String("seed-dir", "", "directory of *.commute files (default: SEED_DIR)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("build logger", "error", err)
		os.Exit(1)
	}

	dir := cfg.SeedDir
	if *seedDir != "" {
		dir = *seedDir
	}

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx := obs.WithLogger(context.Background(), logger)
	if err := initAndSeed(ctx, conn, cfg.DB.Driver, dir); err != nil {
		logger.Error("dbtool failed", "error", err)
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, dir string) error {
	logger := obs.Logger(ctx)

	logger.Info("Initializing database schema...", "driver", driver)
	if err := repositories.InitSchema(conn, driver); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logger.Info("Schema ready.")

	var store ports.ScheduleStore
	if driver == db.DriverPostgres {
		store = repositories.NewSQLScheduleRepository(conn)
	} else {
		store = repositories.NewSqliteScheduleRepository(conn)
	}

	logger.Info("Seeding database...", "dir", dir)
	n, err := repositories.SeedFromDir(ctx, store, dir)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("Seeding complete.", "schedules", n)

	return nil
}
