// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package main is the entry point for the moodreel server.
//
// Moodreel reads a short piece of free text, classifies the emotion it
// expresses with a HuggingFace text-classification model, maps the emotion to
// movie genres, discovers candidates from TMDB and ranks them by genre
// similarity to the user's watch history.
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (koanf)
//  2. Logging: zerolog global logger
//  3. Watch history store: memory or BadgerDB, optionally behind an LRU cache
//  4. Upstream clients: TMDB (rate limited, cached) and HuggingFace, each
//     behind its own circuit breaker
//  5. Recommendation engine
//  6. Supervisor tree: catalog loader, cache statistics, HTTP server
//
// The genre catalog is loaded in the background; until it is available the
// recommendation endpoints answer 503 and /api/v1/health reports degraded.
//
// # Configuration
//
// The two API tokens are required:
//
//	export TMDB_API_TOKEN=...         # TMDB v4 read access token
//	export HUGGINGFACE_API_TOKEN=...  # or HF_TOKEN
//	./moodreel
//
// Persist watch histories across restarts:
//
//	export HISTORY_BACKEND=badger
//	export HISTORY_PATH=/data/history
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests within server.shutdown_timeout and the history store is
// closed after the tree stops.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/supervisor"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("history_backend", cfg.History.Backend).
		Str("language", cfg.TMDB.Language).
		Msg("Starting moodreel")

	components, err := initComponents(cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer components.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	components.register(tree, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Moodreel stopped")
}
