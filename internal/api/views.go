// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

func genreIDs(ids []recommend.GenreID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// genreNames resolves ids against catalog. A nil catalog resolves every name to "".
func genreNames(catalog *recommend.Catalog, ids []recommend.GenreID) []string {
	if catalog == nil {
		return make([]string, len(ids))
	}
	return catalog.Names(ids)
}

func genreViews(catalog *recommend.Catalog, ids []recommend.GenreID) []models.GenreView {
	names := genreNames(catalog, ids)
	out := make([]models.GenreView, len(ids))
	for i, id := range ids {
		out[i] = models.GenreView{ID: int(id), Name: names[i]}
	}
	return out
}

func (h *Handler) movieView(m *recommend.Movie, catalog *recommend.Catalog) models.MovieView {
	return models.MovieView{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		Year:        m.Year(),
		PosterURL:   m.PosterURL(h.config.ImageBaseURL),
		PosterPath:  m.PosterPath,
		GenreIDs:    genreIDs(m.GenreIDs),
		GenreNames:  genreNames(catalog, m.GenreIDs),
		VoteAverage: m.VoteAverage,
		VoteCount:   m.VoteCount,
		ReleaseDate: m.ReleaseDate,
	}
}

func (h *Handler) rankedView(m *recommend.RankedMovie, catalog *recommend.Catalog) models.MovieView {
	view := h.movieView(&m.Movie, catalog)
	if m.Scored {
		similarity := m.Similarity
		view.Similarity = &similarity
	}
	return view
}

func (h *Handler) historyView(userID string, movies []recommend.Movie, catalog *recommend.Catalog) models.WatchHistory {
	views := make([]models.MovieView, len(movies))
	for i := range movies {
		views[i] = h.movieView(&movies[i], catalog)
	}
	return models.WatchHistory{UserID: userID, Count: len(movies), Movies: views}
}

func (h *Handler) recommendationResult(resp *recommend.Response, catalog *recommend.Catalog) models.RecommendationResult {
	movies := make([]models.MovieView, len(resp.Movies))
	for i := range resp.Movies {
		movies[i] = h.rankedView(&resp.Movies[i], catalog)
	}
	return models.RecommendationResult{
		Emotion:         string(resp.Emotion),
		Genres:          genreViews(catalog, resp.Genres),
		FallbackUsed:    resp.FallbackUsed,
		NoSignal:        resp.NoSignal,
		TotalCandidates: resp.TotalCandidates,
		Movies:          movies,
		RequestID:       resp.Metadata.RequestID,
	}
}

// recommendationOutcome labels a response for the recommendations_total metric.
func recommendationOutcome(resp *recommend.Response) string {
	switch {
	case resp.FallbackUsed:
		return metrics.OutcomeFallback
	case resp.NoSignal:
		return metrics.OutcomeNoSignal
	case len(resp.Movies) > 0 && !resp.Movies[0].Scored:
		return metrics.OutcomeUnranked
	default:
		return metrics.OutcomeRanked
	}
}
