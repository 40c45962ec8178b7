// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import "sort"

// Genre is a catalog entry.
type Genre struct {
	ID   GenreID `json:"id"`
	Name string  `json:"name"`
}

// Catalog maps genre IDs to display names. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	names map[GenreID]string
	keys  []GenreID
}

// NewCatalog copies names into a new Catalog.
func NewCatalog(names map[GenreID]string) *Catalog {
	c := &Catalog{
		names: make(map[GenreID]string, len(names)),
		keys:  make([]GenreID, 0, len(names)),
	}
	for id, name := range names {
		c.names[id] = name
		c.keys = append(c.keys, id)
	}
	sort.Slice(c.keys, func(i, j int) bool { return c.keys[i] < c.keys[j] })
	return c
}

// Len returns the number of genres, which is also the genre vector dimension.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the genre IDs in ascending order. This ordering is the basis
// of every genre vector, so it must not change for the catalog's lifetime.
func (c *Catalog) Keys() []GenreID {
	out := make([]GenreID, len(c.keys))
	copy(out, c.keys)
	return out
}

// Name returns the display name of a genre, or "" for unknown IDs.
func (c *Catalog) Name(id GenreID) string {
	return c.names[id]
}

// Names resolves a list of genre IDs. Unknown IDs resolve to "".
func (c *Catalog) Names(ids []GenreID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.names[id]
	}
	return out
}

// Genres returns every catalog entry in ascending ID order.
func (c *Catalog) Genres() []Genre {
	out := make([]Genre, len(c.keys))
	for i, id := range c.keys {
		out[i] = Genre{ID: id, Name: c.names[id]}
	}
	return out
}
