// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

type userPathParams struct {
	UserID string `json:"user_id" validate:"required,notblank,max=128"`
}

// userIDParam reads and validates the {userID} path parameter.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	params := userPathParams{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&params); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return "", false
	}
	return params.UserID, true
}

// WatchHistory handles GET /api/v1/users/{userID}/watched.
func (h *Handler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	movies, err := h.engine.WatchHistory(r.Context(), userID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, h.historyView(userID, movies, h.engine.Catalog()), start)
}

// MarkWatched handles POST /api/v1/users/{userID}/watched. The body is a
// movie, typically one taken from a recommendation response.
func (h *Handler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var body models.WatchedMovieRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	movies, err := h.engine.MarkWatched(r.Context(), userID, watchedMovie(&body))
	metrics.RecordHistoryAppend(err)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, h.historyView(userID, movies, h.engine.Catalog()), start)
}

func watchedMovie(body *models.WatchedMovieRequest) recommend.Movie {
	genres := make([]recommend.GenreID, len(body.GenreIDs))
	for i, id := range body.GenreIDs {
		genres[i] = recommend.GenreID(id)
	}
	return recommend.Movie{
		ID:          body.ID,
		Title:       body.Title,
		GenreIDs:    genres,
		Overview:    body.Overview,
		VoteAverage: body.VoteAverage,
		VoteCount:   body.VoteCount,
		ReleaseDate: body.ReleaseDate,
		PosterPath:  body.PosterPath,
	}
}
