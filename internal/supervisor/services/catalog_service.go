// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogLoader loads the genre catalog. *recommend.Engine implements it.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) error
}

// CatalogServiceConfig configures CatalogService.
type CatalogServiceConfig struct {
	// RetryInterval is the pause between failed attempts. Default: 30s
	RetryInterval time.Duration

	// LoadTimeout bounds a single attempt. Default: 15s
	LoadTimeout time.Duration
}

// CatalogService loads the genre catalog at startup. Until a load succeeds
// recommendation requests are answered with 503, so failures are retried
// every RetryInterval. After the first success the service idles until
// shutdown; it never returns early, which would make suture restart it and
// reload the catalog.
type CatalogService struct {
	loader CatalogLoader
	config CatalogServiceConfig
	logger zerolog.Logger
	name   string

	// loaded is closed after the first successful load.
	loaded chan struct{}
}

// NewCatalogService creates a catalog loading service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogService(loader CatalogLoader, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 30 * time.Second
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 15 * time.Second
	}
	return &CatalogService{
		loader: loader,
		config: cfg,
		logger: logger.With().Str("service", "catalog").Logger(),
		name:   "catalog-loader",
		loaded: make(chan struct{}),
	}
}

// Loaded is closed once the catalog has been loaded.
func (s *CatalogService) Loaded() <-chan struct{} {
	return s.loaded
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	select {
	case <-s.loaded:
		// Restarted by the supervisor after a successful load.
	default:
		if err := s.loadWithRetry(ctx); err != nil {
			return err
		}
		close(s.loaded)
	}

	<-ctx.Done()
	return ctx.Err()
}

func (s *CatalogService) loadWithRetry(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		start := time.Now()
		loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
		err := s.loader.LoadCatalog(loadCtx)
		cancel()

		if err == nil {
			s.logger.Info().
				Int("attempt", attempt).
				Dur("duration", time.Since(start)).
				Msg("genre catalog ready")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", s.config.RetryInterval).
			Msg("genre catalog load failed")

		timer := time.NewTimer(s.config.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *CatalogService) String() string {
	return s.name
}
