// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import (
	"errors"
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validHistoryBackends = map[string]bool{
	"memory": true,
	"badger": true,
}

// Validate checks that required configuration is present and valid.
// It reports the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateTMDB,
		c.validateHuggingFace,
		c.validateHistory,
		c.validateRecommend,
		c.validateSecurity,
		c.validateCatalog,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIToken == "" {
		return errors.New("tmdb.api_token is required (TMDB_API_TOKEN)")
	}
	if err := validateServiceURL(c.TMDB.BaseURL, "tmdb.base_url"); err != nil {
		return err
	}
	if c.TMDB.ImageBaseURL != "" {
		if err := validateServiceURL(c.TMDB.ImageBaseURL, "tmdb.image_base_url"); err != nil {
			return err
		}
	}
	if c.TMDB.MaxPage < 1 {
		return fmt.Errorf("tmdb.max_page must be at least 1, got %d", c.TMDB.MaxPage)
	}
	if c.TMDB.RateLimit < 0 {
		return fmt.Errorf("tmdb.rate_limit must not be negative, got %v", c.TMDB.RateLimit)
	}
	if c.TMDB.RateLimit > 0 && c.TMDB.Burst < 1 {
		return fmt.Errorf("tmdb.burst must be at least 1 when rate limiting, got %d", c.TMDB.Burst)
	}
	if c.TMDB.CacheTTL < 0 {
		return errors.New("tmdb.cache_ttl must not be negative")
	}
	return nil
}

func (c *Config) validateHuggingFace() error {
	if c.HuggingFace.APIToken == "" {
		return errors.New("huggingface.api_token is required (HUGGINGFACE_API_TOKEN)")
	}
	if c.HuggingFace.Model == "" {
		return errors.New("huggingface.model is required")
	}
	return validateServiceURL(c.HuggingFace.BaseURL, "huggingface.base_url")
}

func (c *Config) validateHistory() error {
	if !validHistoryBackends[c.History.Backend] {
		return fmt.Errorf("history.backend must be one of: memory, badger, got %q", c.History.Backend)
	}
	if c.History.Backend == "badger" && c.History.Path == "" {
		return errors.New("history.path is required for the badger backend")
	}
	if c.History.CacheSize < 0 {
		return fmt.Errorf("history.cache_size must not be negative, got %d", c.History.CacheSize)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	switch {
	case r.MinVoteCount < 0:
		return fmt.Errorf("recommend.min_vote_count must not be negative, got %d", r.MinVoteCount)
	case r.MaxResults < 1:
		return fmt.Errorf("recommend.max_results must be positive, got %d", r.MaxResults)
	case r.UseFallback && r.FallbackGenre <= 0:
		return fmt.Errorf("recommend.fallback_genre must be a positive genre id, got %d", r.FallbackGenre)
	case r.FetchConcurrency < 1:
		return fmt.Errorf("recommend.fetch_concurrency must be positive, got %d", r.FetchConcurrency)
	case r.FetchTimeout <= 0:
		return errors.New("recommend.fetch_timeout must be positive")
	case r.ClassifyTimeout <= 0:
		return errors.New("recommend.classify_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return errors.New("security.rate_limit_window must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.RetryInterval <= 0 {
		return errors.New("catalog.retry_interval must be positive")
	}
	if c.Catalog.LoadTimeout <= 0 {
		return errors.New("catalog.load_timeout must be positive")
	}
	return nil
}

// validateServiceURL validates an HTTP/HTTPS base URL. Paths are allowed
// (TMDB is versioned under /3), query parameters are not.
func validateServiceURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
