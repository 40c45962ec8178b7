// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package history persists per-user watch lists.
//
// Two backends implement recommend.HistoryStore:
//
//   - MemoryStore: process-local, lost on restart (default for development)
//   - BadgerStore: durable, backed by BadgerDB
//
// Both serialize appends per store so two concurrent "mark as watched"
// calls never lose an entry, and both return copies from Load so a ranking
// pass always works on a snapshot. CachedStore adds an LRU read-through
// cache in front of either backend.
//
// Use NewStore to build the store selected in configuration:
//
//	store, closer, err := history.NewStore(history.Config{Backend: "badger", Path: "/data/history"})
//	if err != nil { ... }
//	defer closer.Close()
package history
