// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

// respondEngineError maps an engine error to an HTTP status and error code.
// Anything unrecognised is a watch history failure, the only other error
// the engine returns.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrCatalogNotLoaded):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeCatalogUnavailable,
			"Genre catalog is not loaded yet, retry shortly", err)
	case errors.Is(err, recommend.ErrEmptyUserKey):
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "user_id is required", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(w, http.StatusGatewayTimeout, models.ErrCodeTimeout, "Request timed out", err)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeHistory, "Watch history is unavailable", err)
	}
}
