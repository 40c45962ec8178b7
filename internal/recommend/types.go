// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Sentinel errors returned by the engine and its collaborators.
var (
	// ErrCatalogNotLoaded is returned when a request arrives before the genre
	// catalog has been loaded.
	ErrCatalogNotLoaded = errors.New("genre catalog not loaded")

	// ErrEmptyUserKey is returned by history operations given an empty user key.
	ErrEmptyUserKey = errors.New("user key must not be empty")
)

// GenreID identifies a genre in the movie catalog.
type GenreID int

// EmotionLabel is the categorical output of an EmotionClassifier.
type EmotionLabel string

// Labels emitted by the emotion classifier.
const (
	EmotionAnger    EmotionLabel = "anger"
	EmotionDisgust  EmotionLabel = "disgust"
	EmotionFear     EmotionLabel = "fear"
	EmotionJoy      EmotionLabel = "joy"
	EmotionSadness  EmotionLabel = "sadness"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionNeutral  EmotionLabel = "neutral"

	// EmotionNone means the classifier produced no usable signal.
	EmotionNone EmotionLabel = ""
)

// Normalize lowercases the label and trims surrounding whitespace.
func (l EmotionLabel) Normalize() EmotionLabel {
	return EmotionLabel(strings.ToLower(strings.TrimSpace(string(l))))
}

// Movie is a catalog entry as returned by a CandidateSource. A Movie is
// treated as immutable once fetched. Every field except ID may be missing.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	GenreIDs    []GenreID `json:"genre_ids"`
	Overview    string    `json:"overview"`
	VoteAverage float64   `json:"vote_average"`
	VoteCount   int       `json:"vote_count"`
	ReleaseDate string    `json:"release_date"`
	PosterPath  string    `json:"poster_path"`
}

// Year returns the year part of ReleaseDate ("2019-05-30" -> "2019"), or ""
// when the release date is missing.
func (m *Movie) Year() string {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// PosterURL joins base and PosterPath, or returns "" when the movie has no poster.
func (m *Movie) PosterURL(base string) string {
	if m.PosterPath == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(m.PosterPath, "/")
}

// RankedMovie is a Movie annotated with its similarity to the watch history.
type RankedMovie struct {
	Movie

	// Similarity is the best cosine similarity against any watched movie, in [0, 1].
	Similarity float64 `json:"similarity"`

	// Scored is false when ranking was skipped because the history was empty.
	// Similarity is meaningless in that case.
	Scored bool `json:"scored"`
}

// EmotionClassifier maps free text to an emotion label. Implementations return
// EmotionNone when the text carries no strong emotion.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (EmotionLabel, error)
}

// CatalogSource loads the genre catalog.
type CatalogSource interface {
	Genres(ctx context.Context) (map[GenreID]string, error)
}

// CandidateSource discovers movies for a single genre. An error and an empty
// result are handled the same way by the engine.
type CandidateSource interface {
	Discover(ctx context.Context, genre GenreID) ([]Movie, error)
}

// HistoryStore persists the per-user watch list.
type HistoryStore interface {
	// Load returns the user's watch history in the order movies were watched.
	// Unknown users have an empty history.
	Load(ctx context.Context, userKey string) ([]Movie, error)

	// Append adds a movie to the end of the user's watch history.
	Append(ctx context.Context, userKey string, movie Movie) error
}

// Request is a recommendation request. When Emotion is set it is used as is
// and Text is ignored. Otherwise Text is sent to the EmotionClassifier.
type Request struct {
	UserKey   string       `json:"user_key"`
	Text      string       `json:"text,omitempty"`
	Emotion   EmotionLabel `json:"emotion,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}

// Response is the result of a recommendation pass.
type Response struct {
	// Emotion is the label that drove genre selection (EmotionNone if none).
	Emotion EmotionLabel `json:"emotion"`

	// Genres are the genres that were queried.
	Genres []GenreID `json:"genres"`

	// NoSignal is true when the emotion did not map to any genre.
	NoSignal bool `json:"no_signal"`

	// FallbackUsed is true when Config.FallbackGenre replaced the mapping.
	FallbackUsed bool `json:"fallback_used"`

	// TotalCandidates counts unique candidates that passed the vote filter.
	TotalCandidates int `json:"total_candidates"`

	// Movies holds at most Config.MaxResults ranked movies.
	Movies []RankedMovie `json:"movies"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID    string    `json:"request_id"`
	UserKey      string    `json:"user_key"`
	HistorySize  int       `json:"history_size"`
	FailedRounds int       `json:"failed_rounds"`
	LatencyMS    int64     `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
}
