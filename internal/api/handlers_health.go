// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moodreel/internal/models"
)

// Health handles GET /api/v1/health. The service is degraded until the
// genre catalog has been loaded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats := h.engine.Stats()
	status := "healthy"
	if !stats.CatalogLoaded {
		status = "degraded"
	}

	respondSuccess(w, http.StatusOK, models.HealthStatus{
		Status:        status,
		CatalogLoaded: stats.CatalogLoaded,
		Genres:        stats.CatalogGenres,
		Version:       h.config.Version,
		Uptime:        time.Since(h.startTime).Truncate(time.Second).String(),
		Engine: models.EngineStats{
			Requests:       stats.Requests,
			NoSignal:       stats.NoSignal,
			Fallbacks:      stats.Fallbacks,
			FetchErrors:    stats.FetchErrors,
			ClassifyErrors: stats.ClassifyErrors,
		},
	}, start)
}

// Genres handles GET /api/v1/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	catalog := h.engine.Catalog()
	if catalog == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeCatalogUnavailable,
			"Genre catalog is not loaded yet, retry shortly", nil)
		return
	}

	genres := catalog.Genres()
	views := make([]models.GenreView, len(genres))
	for i, g := range genres {
		views[i] = models.GenreView{ID: int(g.ID), Name: g.Name}
	}
	respondSuccess(w, http.StatusOK, views, start)
}
