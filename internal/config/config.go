// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import "time"

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
	TMDB        TMDBConfig        `koanf:"tmdb"`
	HuggingFace HuggingFaceConfig `koanf:"huggingface"`
	History     HistoryConfig     `koanf:"history"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Security    SecurityConfig    `koanf:"security"`
	Catalog     CatalogConfig     `koanf:"catalog"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// TMDBConfig configures The Movie Database client used for the genre
// catalog and candidate discovery.
type TMDBConfig struct {
	BaseURL        string        `koanf:"base_url"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	APIToken       string        `koanf:"api_token"`
	Language       string        `koanf:"language"`
	MinVoteAverage float64       `koanf:"min_vote_average"`
	MaxPage        int           `koanf:"max_page"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	Burst          int           `koanf:"burst"`
	CacheTTL       time.Duration `koanf:"cache_ttl"` // 0 disables the discover cache
}

// HuggingFaceConfig configures the emotion classifier.
type HuggingFaceConfig struct {
	BaseURL  string        `koanf:"base_url"`
	APIToken string        `koanf:"api_token"`
	Model    string        `koanf:"model"`
	Timeout  time.Duration `koanf:"timeout"`
}

// HistoryConfig selects the watch history store.
type HistoryConfig struct {
	Backend   string `koanf:"backend"` // memory or badger
	Path      string `koanf:"path"`
	CacheSize int    `koanf:"cache_size"` // 0 disables the LRU cache
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	MinVoteCount     int           `koanf:"min_vote_count"`
	MaxResults       int           `koanf:"max_results"`
	UseFallback      bool          `koanf:"use_fallback"`
	FallbackGenre    int           `koanf:"fallback_genre"`
	FetchConcurrency int           `koanf:"fetch_concurrency"`
	FetchTimeout     time.Duration `koanf:"fetch_timeout"`
	ClassifyTimeout  time.Duration `koanf:"classify_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CatalogConfig controls genre catalog loading at startup.
type CatalogConfig struct {
	RetryInterval time.Duration `koanf:"retry_interval"`
	LoadTimeout   time.Duration `koanf:"load_timeout"`
}

// Addr returns the listen address host:port.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
