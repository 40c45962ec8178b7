// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodreel/config.yaml",
	"/etc/moodreel/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			APIToken:       "",
			Language:       "es",
			MinVoteAverage: 7,
			MaxPage:        5,
			Timeout:        10 * time.Second,
			RateLimit:      20,
			Burst:          10,
			CacheTTL:       10 * time.Minute,
		},
		HuggingFace: HuggingFaceConfig{
			BaseURL:  "https://api-inference.huggingface.co",
			APIToken: "",
			Model:    "j-hartmann/emotion-english-distilroberta-base",
			Timeout:  15 * time.Second,
		},
		History: HistoryConfig{
			Backend:   "memory",
			Path:      "/data/history",
			CacheSize: 1024,
		},
		Recommend: RecommendConfig{
			MinVoteCount:     700,
			MaxResults:       5,
			UseFallback:      true,
			FallbackGenre:    35, // Comedy
			FetchConcurrency: 4,
			FetchTimeout:     8 * time.Second,
			ClassifyTimeout:  10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Catalog: CatalogConfig{
			RetryInterval: 30 * time.Second,
			LoadTimeout:   15 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak into config.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// TMDB mappings
	"tmdb_base_url":         "tmdb.base_url",
	"tmdb_image_base_url":   "tmdb.image_base_url",
	"tmdb_api_token":        "tmdb.api_token",
	"tmdb_language":         "tmdb.language",
	"tmdb_min_vote_average": "tmdb.min_vote_average",
	"tmdb_max_page":         "tmdb.max_page",
	"tmdb_timeout":          "tmdb.timeout",
	"tmdb_rate_limit":       "tmdb.rate_limit",
	"tmdb_burst":            "tmdb.burst",
	"tmdb_cache_ttl":        "tmdb.cache_ttl",

	// HuggingFace mappings
	"huggingface_base_url":  "huggingface.base_url",
	"huggingface_api_token": "huggingface.api_token",
	"huggingface_model":     "huggingface.model",
	"huggingface_timeout":   "huggingface.timeout",
	"hf_token":              "huggingface.api_token",

	// History mappings
	"history_backend":    "history.backend",
	"history_path":       "history.path",
	"history_cache_size": "history.cache_size",

	// Recommendation engine mappings
	"recommend_min_vote_count":    "recommend.min_vote_count",
	"recommend_max_results":       "recommend.max_results",
	"recommend_use_fallback":      "recommend.use_fallback",
	"recommend_fallback_genre":    "recommend.fallback_genre",
	"recommend_fetch_concurrency": "recommend.fetch_concurrency",
	"recommend_fetch_timeout":     "recommend.fetch_timeout",
	"recommend_classify_timeout":  "recommend.classify_timeout",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Catalog mappings
	"catalog_retry_interval": "catalog.retry_interval",
	"catalog_load_timeout":   "catalog.load_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_TOKEN -> tmdb.api_token
//   - HTTP_PORT -> server.port
//   - RECOMMEND_MAX_RESULTS -> recommend.max_results
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
