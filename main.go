// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/router"
	"github.com/danielhkuo/ballotbox/seed"
	"github.com/danielhkuo/ballotbox/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var err error

	if err := cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	st := store.New()

	// Optional result archive
	var archive handlers.ResultArchive
	closeArchive := func() {}
	if cfg.ArchiveEnabled() {
		snapshots, dbConn, err := openArchive(context.Background(), cfg)
		if err != nil {
			slog.Error("result archive unavailable", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		closeArchive = func() { dbConn.Close() }
		defer closeArchive()

		archive = snapshots
		slog.Info("Result archive ready", "type", cfg.DatabaseType)
	}

	if cfg.SeedData {
		if cfg.IsDevelopment() {
			if _, err := seed.Load(st); err != nil {
				slog.Error("seeding failed", "error", err)
				closeArchive()
				os.Exit(1)
			}
		} else {
			slog.Warn("SEED_DATA ignored outside development", "env", cfg.Env)
		}
	}

	server := http.Server{
		Handler:           router.NewRouter(st, archive, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ctrlc
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "env", cfg.Env)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}

// openArchive connects and prepares the snapshot schema. The connection is
// closed before returning if any step fails.
func openArchive(ctx context.Context, cfg cliparse.Config) (*db.SnapshotStore, *sql.DB, error) {
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("schema creation failed: %w", err)
	}
	return db.NewSnapshotStore(dbConn), dbConn, nil
}

// setupLogger installs a text handler in development and JSON otherwise
func setupLogger(cfg cliparse.Config) {
	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
