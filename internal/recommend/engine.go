// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package does not import other internal packages. Network and
// storage adapters plug in through the collaborator interfaces in types.go.

// Dependencies are the collaborators an Engine needs.
type Dependencies struct {
	Classifier EmotionClassifier
	Catalog    CatalogSource
	Candidates CandidateSource
	History    HistoryStore
}

func (d Dependencies) validate() error {
	switch {
	case d.Classifier == nil:
		return errors.New("emotion classifier is required")
	case d.Catalog == nil:
		return errors.New("catalog source is required")
	case d.Candidates == nil:
		return errors.New("candidate source is required")
	case d.History == nil:
		return errors.New("history store is required")
	}
	return nil
}

// Engine runs the recommendation pipeline. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	deps   Dependencies

	catalog atomic.Pointer[Catalog]

	requestCount  atomic.Int64
	noSignalCount atomic.Int64
	fallbackCount atomic.Int64
	fetchErrors   atomic.Int64
	classifyFails atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests       int64 `json:"requests"`
	NoSignal       int64 `json:"no_signal"`
	Fallbacks      int64 `json:"fallbacks"`
	FetchErrors    int64 `json:"fetch_errors"`
	ClassifyErrors int64 `json:"classify_errors"`
	CatalogLoaded  bool  `json:"catalog_loaded"`
	CatalogGenres  int   `json:"catalog_genres"`
}

// NewEngine creates a new recommendation engine. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		deps:   deps,
	}, nil
}

// LoadCatalog fetches the genre catalog and installs it. Requests already in
// flight keep the catalog they started with.
func (e *Engine) LoadCatalog(ctx context.Context) error {
	names, err := e.deps.Catalog.Genres(ctx)
	if err != nil {
		return fmt.Errorf("load genre catalog: %w", err)
	}
	if len(names) == 0 {
		return errors.New("load genre catalog: catalog is empty")
	}

	catalog := NewCatalog(names)
	e.catalog.Store(catalog)
	e.logger.Info().Int("genres", catalog.Len()).Msg("genre catalog loaded")
	return nil
}

// Catalog returns the current catalog, or nil before LoadCatalog succeeds.
func (e *Engine) Catalog() *Catalog {
	return e.catalog.Load()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend runs one full pass: classify, map to genres, fetch, filter,
// rank and cap. Collaborator failures degrade to empty data. Only a missing
// catalog, an unreadable history, an empty user key or a cancelled context
// are returned as errors.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if strings.TrimSpace(req.UserKey) == "" {
		return nil, ErrEmptyUserKey
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_key", req.UserKey).
		Logger()

	catalog := e.catalog.Load()
	if catalog == nil {
		return nil, ErrCatalogNotLoaded
	}

	label := e.resolveEmotion(ctx, req, logger)
	resp := &Response{Emotion: label, Movies: []RankedMovie{}}

	genres, ok := BuildQueryGenres(label)
	if !ok {
		resp.NoSignal = true
		e.noSignalCount.Add(1)
		if !e.config.UseFallback {
			logger.Debug().Str("emotion", string(label)).Msg("no genre mapping, fallback disabled")
			resp.Genres = []GenreID{}
			resp.Metadata = e.metadata(req, 0, 0, start)
			return resp, nil
		}
		genres = []GenreID{e.config.FallbackGenre}
		resp.FallbackUsed = true
		e.fallbackCount.Add(1)
	}
	resp.Genres = genres

	// The ranking pass works on this snapshot; concurrent appends are not observed.
	history, err := e.deps.History.Load(ctx, req.UserKey)
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}

	rounds, failed, err := e.fetchRounds(ctx, genres, logger)
	if err != nil {
		return nil, err
	}

	candidates := MergeCandidates(rounds, e.config.MinVoteCount)
	ranked := Rank(candidates, history, catalog.Keys())
	if len(ranked) > e.config.MaxResults {
		ranked = ranked[:e.config.MaxResults]
	}

	resp.TotalCandidates = len(candidates)
	resp.Movies = ranked
	resp.Metadata = e.metadata(req, len(history), failed, start)

	logger.Debug().
		Str("emotion", string(label)).
		Int("genres", len(genres)).
		Int("candidates", len(candidates)).
		Int("returned", len(ranked)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// resolveEmotion returns the request's explicit emotion, or classifies the
// text. Classifier failures are logged and treated as no signal.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveEmotion(ctx context.Context, req Request, logger zerolog.Logger) EmotionLabel {
	if req.Emotion != EmotionNone {
		return req.Emotion.Normalize()
	}
	if strings.TrimSpace(req.Text) == "" {
		return EmotionNone
	}

	classifyCtx, cancel := context.WithTimeout(ctx, e.config.ClassifyTimeout)
	defer cancel()

	label, err := e.deps.Classifier.Classify(classifyCtx, req.Text)
	if err != nil {
		e.classifyFails.Add(1)
		logger.Warn().Err(err).Msg("emotion classification failed, treating as no signal")
		return EmotionNone
	}
	return label.Normalize()
}

// fetchRounds queries every genre concurrently and returns the results in
// genre order. A failed fetch contributes an empty round.
func (e *Engine) fetchRounds(ctx context.Context, genres []GenreID, logger zerolog.Logger) ([][]Movie, int, error) {
	rounds := make([][]Movie, len(genres))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.FetchConcurrency)

	for i, genre := range genres {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, e.config.FetchTimeout)
			defer cancel()

			movies, err := e.deps.Candidates.Discover(fetchCtx, genre)
			if err != nil {
				failed.Add(1)
				e.fetchErrors.Add(1)
				logger.Warn().Err(err).Int("genre", int(genre)).Msg("candidate fetch failed")
				return nil
			}
			rounds[i] = movies
			return nil
		})
	}

	//nolint:errcheck // workers never return errors
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("fetch candidates: %w", err)
	}
	return rounds, int(failed.Load()), nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) metadata(req Request, historySize, failed int, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID:    req.RequestID,
		UserKey:      req.UserKey,
		HistorySize:  historySize,
		FailedRounds: failed,
		LatencyMS:    time.Since(start).Milliseconds(),
		Timestamp:    time.Now(),
	}
}

// WatchHistory returns the user's watch history.
func (e *Engine) WatchHistory(ctx context.Context, userKey string) ([]Movie, error) {
	if strings.TrimSpace(userKey) == "" {
		return nil, ErrEmptyUserKey
	}
	history, err := e.deps.History.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}
	return history, nil
}

// MarkWatched appends movie to the user's history and returns the updated history.
//
//nolint:gocritic // hugeParam: movie passed by value, it is stored as is
func (e *Engine) MarkWatched(ctx context.Context, userKey string, movie Movie) ([]Movie, error) {
	if strings.TrimSpace(userKey) == "" {
		return nil, ErrEmptyUserKey
	}
	if err := e.deps.History.Append(ctx, userKey, movie); err != nil {
		return nil, fmt.Errorf("append watched movie: %w", err)
	}
	e.logger.Debug().Str("user_key", userKey).Int64("movie_id", movie.ID).Msg("movie marked as watched")
	return e.WatchHistory(ctx, userKey)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests:       e.requestCount.Load(),
		NoSignal:       e.noSignalCount.Load(),
		Fallbacks:      e.fallbackCount.Load(),
		FetchErrors:    e.fetchErrors.Load(),
		ClassifyErrors: e.classifyFails.Load(),
	}
	if c := e.catalog.Load(); c != nil {
		s.CatalogLoaded = true
		s.CatalogGenres = c.Len()
	}
	return s
}
