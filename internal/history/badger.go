// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moodreel/internal/recommend"
)

// watchedKeyPrefix namespaces watch-list entries in BadgerDB.
const watchedKeyPrefix = "watched:"

// maxConflictRetries bounds retries of an append that lost a transaction race.
const maxConflictRetries = 5

// BadgerStore persists watch histories in BadgerDB. Each user is one key
// holding the JSON-encoded list of watched movies.
type BadgerStore struct {
	db *badger.DB

	// appendMu serializes appends within the process. Badger's optimistic
	// transactions still guard against other writers.
	appendMu sync.Mutex
}

// NewBadgerStore wraps an open BadgerDB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func watchedKey(userKey string) []byte {
	return []byte(watchedKeyPrefix + userKey)
}

// Load returns the user's history. Unknown users have an empty history.
func (s *BadgerStore) Load(_ context.Context, userKey string) ([]recommend.Movie, error) {
	if userKey == "" {
		return nil, recommend.ErrEmptyUserKey
	}

	var movies []recommend.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		movies, err = readMovies(txn, userKey)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Append adds movie to the end of the user's history in one read-modify-write
// transaction.
//
//nolint:gocritic // hugeParam: movie is stored by value
func (s *BadgerStore) Append(ctx context.Context, userKey string, movie recommend.Movie) error {
	if userKey == "" {
		return recommend.ErrEmptyUserKey
	}

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			movies, err := readMovies(txn, userKey)
			if err != nil {
				return err
			}
			movies = append(movies, movie)

			data, err := json.Marshal(movies)
			if err != nil {
				return fmt.Errorf("marshal watch history: %w", err)
			}
			if err := txn.Set(watchedKey(userKey), data); err != nil {
				return fmt.Errorf("set watch history: %w", err)
			}
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("append watch history after %d attempts: %w", maxConflictRetries, err)
}

func readMovies(txn *badger.Txn, userKey string) ([]recommend.Movie, error) {
	item, err := txn.Get(watchedKey(userKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []recommend.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get watch history: %w", err)
	}

	var movies []recommend.Movie
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &movies)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal watch history: %w", err)
	}
	if movies == nil {
		movies = []recommend.Movie{}
	}
	return movies, nil
}
