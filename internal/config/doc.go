// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package config provides layered configuration loading for Moodreel.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, then config.yaml, config.yml,
    /etc/moodreel/config.yaml, /etc/moodreel/config.yml)
 3. Environment variables, mapped explicitly by envTransformFunc

# Required Settings

	TMDB_API_TOKEN         TMDB v4 read access token
	HUGGINGFACE_API_TOKEN  HuggingFace Inference API token (HF_TOKEN also accepted)

# Example YAML

	server:
	  port: 8080
	logging:
	  level: debug
	  format: console
	tmdb:
	  language: es
	  cache_ttl: 10m
	history:
	  backend: badger
	  path: /data/history
	recommend:
	  max_results: 5
	  fallback_genre: 35

Durations accept Go duration strings (30s, 10m). Comma separated values
are accepted for CORS_ORIGINS.
*/
package config
