// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

Recommendation Metrics:
  - recommendations_total: Completed recommendation passes (counter)
    Labels: emotion, outcome (ranked, unranked, fallback, no_signal)
  - recommendation_candidates: Candidates left after filtering (histogram)
  - recommendation_fetch_failures_total: Failed per-genre discover calls (counter)

Upstream Metrics:
  - upstream_request_duration_seconds: TMDB and HuggingFace call latency (histogram)
    Labels: upstream, operation
  - discover_cache_hits_total / discover_cache_misses_total: TMDB discover cache (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

History Metrics:
  - history_appends_total: Labels backend, result
  - history_cache_hits_total / history_cache_misses_total

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest("POST", "/api/v1/recommendations", "200", time.Since(start))
*/
package metrics
