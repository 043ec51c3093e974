package main

import (
	"commute-planner/internal/adapters/cache"
	"commute-planner/internal/adapters/repositories"
	"commute-planner/internal/api"
	"commute-planner/internal/config"
	"commute-planner/internal/platform/db"
	"commute-planner/internal/platform/obs"
	"commute-planner/internal/ports"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL or directory store, graph cache) behind ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", config.Get("CONFIG_FILE", ""), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("build logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		logger.Error("open schedule store", "error", err)
		os.Exit(1)
	}
	defer closeRepo.Close()

	graphs := cache.NewGraphCache(cfg.GraphCache.Size, cfg.GraphCache.TTL)
	router := api.NewRouter(repo, graphs, logger)

	// Planning is CPU bound and local, so the write timeout stays short.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}

	hits, misses := graphs.Stats()
	logger.Info("graph cache", "hits", hits, "misses", misses)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openRepository picks the schedule store: a directory of *.commute files
// when SCHEDULE_DIR is set, otherwise the configured database, whose schema
// is created and seeded on startup for local runs.
func openRepository(cfg *config.Config) (ports.ScheduleRepository, io.Closer, error) {
	if cfg.ScheduleDir != "" {
		info, err := os.Stat(cfg.ScheduleDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open repository: %w", err)
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("open repository: %q is not a directory", cfg.ScheduleDir)
		}
		return repositories.NewDirScheduleRepository(cfg.ScheduleDir), nopCloser{}, nil
	}

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	if err := repositories.InitSchema(conn, cfg.DB.Driver); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	var store ports.ScheduleStore
	switch cfg.DB.Driver {
	case db.DriverPostgres:
		store = repositories.NewSQLScheduleRepository(conn)
	default:
		store = repositories.NewSqliteScheduleRepository(conn)
	}

	if cfg.SeedDir != "" {
		if _, err := os.Stat(cfg.SeedDir); err == nil {
			n, err := repositories.SeedFromDir(context.Background(), store, cfg.SeedDir)
			if err != nil {
				conn.Close()
				return nil, nil, fmt.Errorf("open repository: %w", err)
			}
			slog.Info("seeded schedules", "dir", cfg.SeedDir, "count", n)
		}
	}

	return store, conn, nil
}
