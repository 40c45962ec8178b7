// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moodreel/internal/recommend"
)

// Recommender is the engine surface the handlers use. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	WatchHistory(ctx context.Context, userKey string) ([]recommend.Movie, error)
	MarkWatched(ctx context.Context, userKey string, movie recommend.Movie) ([]recommend.Movie, error)
	Catalog() *recommend.Catalog
	Stats() recommend.Stats
}

// HandlerConfig holds handler options.
type HandlerConfig struct {
	// ImageBaseURL is prefixed to poster paths, e.g. https://image.tmdb.org/t/p/w500.
	ImageBaseURL string

	// RequestTimeout bounds a whole recommendation pass. Zero means no extra bound.
	RequestTimeout time.Duration

	// Version is reported by the health endpoint.
	Version string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_watched.go: watch history endpoints
//   - handlers_health.go: health and genre catalog
//   - views.go: engine type to API view conversion
type Handler struct {
	engine    Recommender
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler.
//
//nolint:gocritic // hugeParam: config is copied once at startup
func NewHandler(engine Recommender, config HandlerConfig) *Handler {
	return &Handler{
		engine:    engine,
		config:    config,
		startTime: time.Now(),
	}
}

// requestContext applies RequestTimeout to ctx.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.config.RequestTimeout)
}
