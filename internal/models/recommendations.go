// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required,notblank,max=128"`
	Text   string `json:"text" validate:"required,notblank,max=2000"`
}

// RegenerateRequest is the body of POST /api/v1/recommendations/regenerate.
// Emotion is usually the label returned by a previous recommendation.
type RegenerateRequest struct {
	UserID  string `json:"user_id" validate:"required,notblank,max=128"`
	Emotion string `json:"emotion" validate:"max=32"`
}

// WatchedMovieRequest is the body of POST /api/v1/users/{userID}/watched.
type WatchedMovieRequest struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"max=512"`
	GenreIDs    []int   `json:"genre_ids" validate:"max=64,dive,gt=0"`
	Overview    string  `json:"overview" validate:"max=10000"`
	VoteAverage float64 `json:"vote_average" validate:"gte=0,lte=10"`
	VoteCount   int     `json:"vote_count" validate:"gte=0"`
	ReleaseDate string  `json:"release_date" validate:"max=32"`
	PosterPath  string  `json:"poster_path" validate:"max=512"`
}

// GenreView is a genre with its display name.
type GenreView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieView is a movie as shown to clients.
type MovieView struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Year        string   `json:"year"`
	PosterURL   string   `json:"poster_url,omitempty"`
	PosterPath  string   `json:"poster_path,omitempty"`
	GenreIDs    []int    `json:"genre_ids"`
	GenreNames  []string `json:"genre_names"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   int      `json:"vote_count"`
	ReleaseDate string   `json:"release_date,omitempty"`

	// Similarity is omitted when the movie was not ranked against a history.
	Similarity *float64 `json:"similarity,omitempty"`
}

// RecommendationResult is the data payload of a recommendation response.
type RecommendationResult struct {
	Emotion         string      `json:"emotion"`
	Genres          []GenreView `json:"genres"`
	FallbackUsed    bool        `json:"fallback_used"`
	NoSignal        bool        `json:"no_signal"`
	TotalCandidates int         `json:"total_candidates"`
	Movies          []MovieView `json:"movies"`
	RequestID       string      `json:"request_id"`
}

// WatchHistory is the data payload of the watched endpoints.
type WatchHistory struct {
	UserID string      `json:"user_id"`
	Count  int         `json:"count"`
	Movies []MovieView `json:"movies"`
}

// HealthStatus is the data payload of GET /api/v1/health.
type HealthStatus struct {
	Status        string `json:"status"`
	CatalogLoaded bool   `json:"catalog_loaded"`
	Genres        int    `json:"genres"`
	Version       string `json:"version,omitempty"`
	Uptime        string `json:"uptime,omitempty"`

	Engine EngineStats `json:"engine"`
}

// EngineStats are the engine counters since process start.
type EngineStats struct {
	Requests       int64 `json:"requests"`
	NoSignal       int64 `json:"no_signal"`
	Fallbacks      int64 `json:"fallbacks"`
	FetchErrors    int64 `json:"fetch_errors"`
	ClassifyErrors int64 `json:"classify_errors"`
}
