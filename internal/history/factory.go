// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package history

import (
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/moodreel/internal/recommend"
)

// Backend selects the storage engine.
type Backend string

const (
	// BackendMemory keeps histories in process memory (not persistent).
	BackendMemory Backend = "memory"

	// BackendBadger persists histories in BadgerDB.
	BackendBadger Backend = "badger"
)

// Config selects and configures the history store.
type Config struct {
	// Backend is memory or badger. Empty means memory.
	Backend Backend

	// Path is the BadgerDB directory (badger only).
	Path string

	// CacheSize enables an LRU cache of that many users when > 0.
	CacheSize int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewStore builds the configured store. The returned closer releases the
// underlying database and must be called on shutdown.
func NewStore(cfg Config) (recommend.HistoryStore, io.Closer, error) {
	var (
		store  recommend.HistoryStore
		closer io.Closer = nopCloser{}
	)

	switch cfg.Backend {
	case BackendMemory, "":
		store = NewMemoryStore()

	case BackendBadger:
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("history path is required for the badger backend")
		}
		opts := badger.DefaultOptions(cfg.Path)
		opts.Logger = nil // Suppress BadgerDB logs

		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger db for watch history: %w", err)
		}
		store = NewBadgerStore(db)
		closer = db

	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}

	if cfg.CacheSize > 0 {
		cached, err := NewCachedStore(store, cfg.CacheSize)
		if err != nil {
			//nolint:errcheck // best effort cleanup on construction failure
			closer.Close()
			return nil, nil, err
		}
		store = cached
	}

	return store, closer, nil
}
