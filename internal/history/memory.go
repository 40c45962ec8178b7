// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package history

import (
	"context"
	"sync"

	"github.com/tomtom215/moodreel/internal/recommend"
)

// MemoryStore keeps watch histories in memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	history map[string][]recommend.Movie
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{history: make(map[string][]recommend.Movie)}
}

// Load returns a copy of the user's history.
func (s *MemoryStore) Load(_ context.Context, userKey string) ([]recommend.Movie, error) {
	if userKey == "" {
		return nil, recommend.ErrEmptyUserKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := s.history[userKey]
	out := make([]recommend.Movie, len(movies))
	copy(out, movies)
	return out, nil
}

// Append adds movie to the end of the user's history.
//
//nolint:gocritic // hugeParam: movie is stored by value
func (s *MemoryStore) Append(_ context.Context, userKey string, movie recommend.Movie) error {
	if userKey == "" {
		return recommend.ErrEmptyUserKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userKey] = append(s.history[userKey], movie)
	return nil
}
