// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package history

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/recommend"
)

// CachedStore is a read-through LRU cache in front of another HistoryStore.
// Appends go to the backend first and then invalidate the cached entry.
type CachedStore struct {
	backend recommend.HistoryStore
	cache   *lru.Cache[string, []recommend.Movie]

	// mu orders cache fills against invalidations so a slow Load can never
	// re-insert a history that an Append has already superseded.
	mu sync.RWMutex
}

// NewCachedStore wraps backend with an LRU cache holding up to size users.
func NewCachedStore(backend recommend.HistoryStore, size int) (*CachedStore, error) {
	cache, err := lru.New[string, []recommend.Movie](size)
	if err != nil {
		return nil, fmt.Errorf("create history cache: %w", err)
	}
	return &CachedStore{backend: backend, cache: cache}, nil
}

// Load returns the cached history or reads it from the backend.
func (s *CachedStore) Load(ctx context.Context, userKey string) ([]recommend.Movie, error) {
	if userKey == "" {
		return nil, recommend.ErrEmptyUserKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if movies, ok := s.cache.Get(userKey); ok {
		metrics.RecordHistoryCache(true)
		return cloneMovies(movies), nil
	}
	metrics.RecordHistoryCache(false)

	movies, err := s.backend.Load(ctx, userKey)
	if err != nil {
		return nil, err
	}
	s.cache.Add(userKey, cloneMovies(movies))
	return movies, nil
}

// Append writes through to the backend and drops the cached entry.
//
//nolint:gocritic // hugeParam: movie is stored by value
func (s *CachedStore) Append(ctx context.Context, userKey string, movie recommend.Movie) error {
	if userKey == "" {
		return recommend.ErrEmptyUserKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Append(ctx, userKey, movie); err != nil {
		return err
	}
	s.cache.Remove(userKey)
	return nil
}

// Len returns the number of cached users.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}

func cloneMovies(movies []recommend.Movie) []recommend.Movie {
	out := make([]recommend.Movie, len(movies))
	copy(out, movies)
	return out
}
