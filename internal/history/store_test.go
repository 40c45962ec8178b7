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
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/moodreel/internal/recommend"
)

// createTestBadgerDB opens a BadgerDB in a temp directory that is removed
// when the test finishes.
func createTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil // Disable logging for tests
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// storeFactories lists every HistoryStore implementation under test.
func storeFactories() map[string]func(t *testing.T) recommend.HistoryStore {
	return map[string]func(t *testing.T) recommend.HistoryStore{
		"memory": func(*testing.T) recommend.HistoryStore {
			return NewMemoryStore()
		},
		"badger": func(t *testing.T) recommend.HistoryStore {
			return NewBadgerStore(createTestBadgerDB(t))
		},
		"cached-memory": func(t *testing.T) recommend.HistoryStore {
			s, err := NewCachedStore(NewMemoryStore(), 16)
			if err != nil {
				t.Fatal(err)
			}
			return s
		},
		"cached-badger": func(t *testing.T) recommend.HistoryStore {
			s, err := NewCachedStore(NewBadgerStore(createTestBadgerDB(t)), 16)
			if err != nil {
				t.Fatal(err)
			}
			return s
		},
	}
}

func testMovie(id int64) recommend.Movie {
	return recommend.Movie{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		GenreIDs:    []recommend.GenreID{35, 18},
		VoteCount:   1200,
		VoteAverage: 7.4,
		ReleaseDate: "2014-11-28",
		PosterPath:  "/poster.jpg",
	}
}

func TestStores_AppendAndLoad(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)
			ctx := context.Background()

			empty, err := store.Load(ctx, "ana")
			if err != nil {
				t.Fatalf("Load unknown user: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("unknown user history = %v, want empty", empty)
			}

			for _, id := range []int64{3, 1, 2} {
				if err := store.Append(ctx, "ana", testMovie(id)); err != nil {
					t.Fatalf("Append(%d): %v", id, err)
				}
			}

			got, err := store.Load(ctx, "ana")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 3 || got[0].ID != 3 || got[1].ID != 1 || got[2].ID != 2 {
				t.Errorf("history order = %v, want [3 1 2]", got)
			}
			if got[0].Title != "Movie 3" || len(got[0].GenreIDs) != 2 || got[0].ReleaseDate != "2014-11-28" {
				t.Errorf("movie fields not preserved: %+v", got[0])
			}

			other, err := store.Load(ctx, "ben")
			if err != nil {
				t.Fatal(err)
			}
			if len(other) != 0 {
				t.Errorf("histories leaked between users: %v", other)
			}
		})
	}
}

func TestStores_EmptyUserKey(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)
			if _, err := store.Load(context.Background(), ""); !errors.Is(err, recommend.ErrEmptyUserKey) {
				t.Errorf("Load error = %v, want ErrEmptyUserKey", err)
			}
			if err := store.Append(context.Background(), "", testMovie(1)); !errors.Is(err, recommend.ErrEmptyUserKey) {
				t.Errorf("Append error = %v, want ErrEmptyUserKey", err)
			}
		})
	}
}

func TestStores_LoadReturnsSnapshot(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)
			ctx := context.Background()
			if err := store.Append(ctx, "ana", testMovie(1)); err != nil {
				t.Fatal(err)
			}

			snapshot, err := store.Load(ctx, "ana")
			if err != nil {
				t.Fatal(err)
			}
			snapshot[0].Title = "mutated"

			if err := store.Append(ctx, "ana", testMovie(2)); err != nil {
				t.Fatal(err)
			}
			if len(snapshot) != 1 {
				t.Errorf("snapshot grew after Append: %d", len(snapshot))
			}

			fresh, err := store.Load(ctx, "ana")
			if err != nil {
				t.Fatal(err)
			}
			if fresh[0].Title != "Movie 1" {
				t.Errorf("stored movie mutated through snapshot: %q", fresh[0].Title)
			}
			if len(fresh) != 2 {
				t.Errorf("len = %d, want 2", len(fresh))
			}
		})
	}
}

func TestStores_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	const writers = 8
	const perWriter = 10

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t)
			ctx := context.Background()

			var wg sync.WaitGroup
			errs := make(chan error, writers*perWriter)
			for w := 0; w < writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWriter; i++ {
						if err := store.Append(ctx, "shared", testMovie(int64(w*perWriter+i))); err != nil {
							errs <- err
						}
						if _, err := store.Load(ctx, "shared"); err != nil {
							errs <- err
						}
					}
				}(w)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Errorf("concurrent op failed: %v", err)
			}

			got, err := store.Load(ctx, "shared")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != writers*perWriter {
				t.Errorf("len = %d, want %d (lost appends)", len(got), writers*perWriter)
			}
		})
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	open := func() *badger.DB {
		opts := badger.DefaultOptions(dir)
		opts.Logger = nil
		db, err := badger.Open(opts)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return db
	}

	db := open()
	if err := NewBadgerStore(db).Append(ctx, "ana", testMovie(7)); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db = open()
	defer db.Close()
	store := NewBadgerStore(db)

	got, err := store.Load(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Errorf("history after reopen = %v", got)
	}
}

func TestBadgerStore_AppendHonoursContext(t *testing.T) {
	t.Parallel()

	store := NewBadgerStore(createTestBadgerDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Append(ctx, "ana", testMovie(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCachedStore_InvalidatesOnAppend(t *testing.T) {
	t.Parallel()

	backend := NewMemoryStore()
	store, err := NewCachedStore(backend, 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := store.Load(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d after first load, want 1", store.Len())
	}

	if err := store.Append(ctx, "ana", testMovie(1)); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("stale cache after append: %v", got)
	}

	// Capacity 2: loading a third user evicts the least recently used one.
	for _, u := range []string{"ben", "cleo"} {
		if _, err := store.Load(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestNewCachedStore_InvalidSize(t *testing.T) {
	t.Parallel()

	if _, err := NewCachedStore(NewMemoryStore(), 0); err == nil {
		t.Error("expected error for size 0")
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, s recommend.HistoryStore)
	}{
		{
			name: "default is memory",
			cfg:  Config{},
			check: func(t *testing.T, s recommend.HistoryStore) {
				if _, ok := s.(*MemoryStore); !ok {
					t.Errorf("store = %T, want *MemoryStore", s)
				}
			},
		},
		{
			name: "badger",
			cfg:  Config{Backend: BackendBadger, Path: t.TempDir()},
			check: func(t *testing.T, s recommend.HistoryStore) {
				if _, ok := s.(*BadgerStore); !ok {
					t.Errorf("store = %T, want *BadgerStore", s)
				}
			},
		},
		{
			name: "cached badger",
			cfg:  Config{Backend: BackendBadger, Path: t.TempDir(), CacheSize: 100},
			check: func(t *testing.T, s recommend.HistoryStore) {
				if _, ok := s.(*CachedStore); !ok {
					t.Errorf("store = %T, want *CachedStore", s)
				}
			},
		},
		{name: "badger without path", cfg: Config{Backend: BackendBadger}, wantErr: true},
		{name: "unknown backend", cfg: Config{Backend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, closer, err := NewStore(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStore error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer closer.Close()

			if err := store.Append(context.Background(), "ana", testMovie(1)); err != nil {
				t.Fatalf("Append: %v", err)
			}
			tt.check(t, store)
		})
	}
}
