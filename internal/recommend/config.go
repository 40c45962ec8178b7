// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MinVoteCount drops candidates with VoteCount <= MinVoteCount.
	MinVoteCount int `json:"min_vote_count"`

	// MaxResults caps the ranked output.
	MaxResults int `json:"max_results"`

	// UseFallback queries FallbackGenre when the emotion has no mapping.
	// When false such requests return an empty result with NoSignal set.
	UseFallback bool `json:"use_fallback"`

	// FallbackGenre is the genre queried when UseFallback applies.
	FallbackGenre GenreID `json:"fallback_genre"`

	// FetchConcurrency bounds the number of in-flight per-genre fetches.
	FetchConcurrency int `json:"fetch_concurrency"`

	// FetchTimeout bounds a single per-genre fetch.
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// ClassifyTimeout bounds the emotion classifier call.
	ClassifyTimeout time.Duration `json:"classify_timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinVoteCount:     DefaultMinVoteCount,
		MaxResults:       5,
		UseFallback:      true,
		FallbackGenre:    GenreComedy,
		FetchConcurrency: 4,
		FetchTimeout:     8 * time.Second,
		ClassifyTimeout:  10 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MinVoteCount < 0 {
		return fmt.Errorf("min_vote_count must be non-negative, got %d", c.MinVoteCount)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.UseFallback && c.FallbackGenre <= 0 {
		return fmt.Errorf("fallback_genre must be positive when use_fallback is set, got %d", c.FallbackGenre)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be positive, got %d", c.FetchConcurrency)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %v", c.FetchTimeout)
	}
	if c.ClassifyTimeout <= 0 {
		return fmt.Errorf("classify_timeout must be positive, got %v", c.ClassifyTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
