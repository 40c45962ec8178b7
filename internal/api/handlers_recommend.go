// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/middleware"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

// Recommend handles POST /api/v1/recommendations. The text is classified
// and the resulting emotion drives genre selection.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body models.RecommendRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	h.runRecommendation(w, r, recommend.Request{
		UserKey:   body.UserID,
		Text:      body.Text,
		RequestID: middleware.GetRequestID(r.Context()),
	}, start)
}

// Regenerate handles POST /api/v1/recommendations/regenerate. Discovery
// pages are random, so re-running with the same emotion yields new
// candidates. A missing or unmapped emotion uses the fallback genre.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body models.RegenerateRequest
	if !decodeAndValidate(w, r, &body) {
		return
	}

	h.runRecommendation(w, r, recommend.Request{
		UserKey:   body.UserID,
		Emotion:   recommend.EmotionLabel(body.Emotion),
		RequestID: middleware.GetRequestID(r.Context()),
	}, start)
}

//nolint:gocritic // hugeParam: req passed by value like the engine API
func (h *Handler) runRecommendation(w http.ResponseWriter, r *http.Request, req recommend.Request, start time.Time) {
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	metrics.RecordRecommendation(string(resp.Emotion), recommendationOutcome(resp),
		resp.TotalCandidates, resp.Metadata.FailedRounds)

	logging.Ctx(r.Context()).Info().
		Str("user_id", sanitizeLogValue(req.UserKey)).
		Str("emotion", string(resp.Emotion)).
		Bool("fallback_used", resp.FallbackUsed).
		Int("movies", len(resp.Movies)).
		Int("failed_rounds", resp.Metadata.FailedRounds).
		Msg("Recommendation served")

	respondSuccess(w, http.StatusOK, h.recommendationResult(resp, h.engine.Catalog()), start)
}
