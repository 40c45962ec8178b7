// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/api"
	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/emotion"
	"github.com/tomtom215/moodreel/internal/history"
	"github.com/tomtom215/moodreel/internal/recommend"
	"github.com/tomtom215/moodreel/internal/supervisor"
	"github.com/tomtom215/moodreel/internal/supervisor/services"
	"github.com/tomtom215/moodreel/internal/tmdb"
)

// Components holds everything built from configuration.
type Components struct {
	Engine  *recommend.Engine
	TMDB    *tmdb.Client
	Handler http.Handler

	historyCloser io.Closer
	logger        zerolog.Logger
}

// initComponents builds the history store, upstream clients, engine and
// HTTP handler. On error everything opened so far is closed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initComponents(cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	store, closer, err := history.NewStore(history.Config{
		Backend:   history.Backend(cfg.History.Backend),
		Path:      cfg.History.Path,
		CacheSize: cfg.History.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("watch history store: %w", err)
	}

	c := &Components{historyCloser: closer, logger: logger}

	c.TMDB, err = tmdb.NewClient(buildTMDBConfig(cfg), logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("tmdb client: %w", err)
	}

	classifier, err := emotion.NewClassifier(buildClassifierConfig(cfg), logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("emotion classifier: %w", err)
	}

	c.Engine, err = recommend.NewEngine(buildEngineConfig(cfg), recommend.Dependencies{
		Classifier: classifier,
		Catalog:    c.TMDB,
		Candidates: c.TMDB,
		History:    store,
	}, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	handler := api.NewHandler(c.Engine, api.HandlerConfig{
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		RequestTimeout: handlerTimeout(cfg.Server.WriteTimeout),
		Version:        version,
	})
	c.Handler = api.NewRouter(handler, buildMiddlewareConfig(cfg)).Setup()

	return c, nil
}

// register adds the long-running services to the supervisor tree.
func (c *Components) register(tree *supervisor.SupervisorTree, cfg *config.Config) {
	tree.AddDataService(services.NewCatalogService(c.Engine, services.CatalogServiceConfig{
		RetryInterval: cfg.Catalog.RetryInterval,
		LoadTimeout:   cfg.Catalog.LoadTimeout,
	}, c.logger))

	tree.AddMaintenanceService(services.NewCacheStatsService(c.TMDB, 0))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      c.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
}

// Close releases the TMDB cache sweeper and the history store.
func (c *Components) Close() {
	if c.TMDB != nil {
		if err := c.TMDB.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Error closing TMDB client")
		}
	}
	if c.historyCloser != nil {
		if err := c.historyCloser.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Error closing watch history store")
		}
	}
}

// handlerTimeout leaves room below the connection write deadline so a 504
// envelope can still be written when a request runs out of time.
func handlerTimeout(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 0
	}
	margin := min(max(writeTimeout/10, time.Second), 5*time.Second)
	if margin >= writeTimeout {
		return writeTimeout / 2
	}
	return writeTimeout - margin
}

func buildTMDBConfig(cfg *config.Config) tmdb.Config {
	return tmdb.Config{
		BaseURL:        cfg.TMDB.BaseURL,
		APIToken:       cfg.TMDB.APIToken,
		Language:       cfg.TMDB.Language,
		MinVoteAverage: cfg.TMDB.MinVoteAverage,
		MaxPage:        cfg.TMDB.MaxPage,
		Timeout:        cfg.TMDB.Timeout,
		RateLimit:      cfg.TMDB.RateLimit,
		Burst:          cfg.TMDB.Burst,
		CacheTTL:       cfg.TMDB.CacheTTL,
	}
}

func buildClassifierConfig(cfg *config.Config) emotion.Config {
	return emotion.Config{
		BaseURL:  cfg.HuggingFace.BaseURL,
		APIToken: cfg.HuggingFace.APIToken,
		Model:    cfg.HuggingFace.Model,
		Timeout:  cfg.HuggingFace.Timeout,
	}
}

func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		MinVoteCount:     cfg.Recommend.MinVoteCount,
		MaxResults:       cfg.Recommend.MaxResults,
		UseFallback:      cfg.Recommend.UseFallback,
		FallbackGenre:    recommend.GenreID(cfg.Recommend.FallbackGenre),
		FetchConcurrency: cfg.Recommend.FetchConcurrency,
		FetchTimeout:     cfg.Recommend.FetchTimeout,
		ClassifyTimeout:  cfg.Recommend.ClassifyTimeout,
	}
}

func buildMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
