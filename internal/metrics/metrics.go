// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeRanked   = "ranked"
	OutcomeUnranked = "unranked"
	OutcomeFallback = "fallback"
	OutcomeNoSignal = "no_signal"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of completed recommendation passes",
		},
		[]string{"emotion", "outcome"},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidates left after vote filtering and dedup",
			Buckets: []float64{0, 5, 10, 20, 40, 60, 80, 100},
		},
	)

	RecommendationFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_fetch_failures_total",
			Help: "Total number of per-genre discover calls that failed",
		},
	)

	// Upstream Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of calls to external services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "operation"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Total number of failed calls to external services",
		},
		[]string{"upstream", "operation"},
	)

	DiscoverCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discover_cache_hits_total",
			Help: "Total number of discover cache hits",
		},
	)

	DiscoverCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discover_cache_misses_total",
			Help: "Total number of discover cache misses",
		},
	)

	DiscoverCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discover_cache_entries",
			Help: "Number of discover pages currently cached",
		},
	)

	DiscoverCacheEvictions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discover_cache_evictions",
			Help: "Discover cache entries evicted since start",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// History Metrics
	HistoryAppends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_appends_total",
			Help: "Total number of watched movies appended to user histories",
		},
		[]string{"result"},
	)

	HistoryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_cache_hits_total",
			Help: "Total number of watch history cache hits",
		},
	)

	HistoryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_cache_misses_total",
			Help: "Total number of watch history cache misses",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one finished recommendation pass.
// An empty emotion is reported as "none".
func RecordRecommendation(emotion, outcome string, candidates, failedRounds int) {
	if emotion == "" {
		emotion = "none"
	}
	RecommendationsTotal.WithLabelValues(emotion, outcome).Inc()
	RecommendationCandidates.Observe(float64(candidates))
	if failedRounds > 0 {
		RecommendationFetchFailures.Add(float64(failedRounds))
	}
}

// RecordUpstreamCall records latency and failures of an external call.
func RecordUpstreamCall(upstream, operation string, duration time.Duration, err error) {
	UpstreamRequestDuration.WithLabelValues(upstream, operation).Observe(duration.Seconds())
	if err != nil {
		UpstreamErrors.WithLabelValues(upstream, operation).Inc()
	}
}

// RecordDiscoverCache records a discover cache lookup.
func RecordDiscoverCache(hit bool) {
	if hit {
		DiscoverCacheHits.Inc()
	} else {
		DiscoverCacheMisses.Inc()
	}
}

// SetDiscoverCacheSize publishes a discover cache snapshot.
func SetDiscoverCacheSize(entries, evictions int64) {
	DiscoverCacheEntries.Set(float64(entries))
	DiscoverCacheEvictions.Set(float64(evictions))
}

// RecordHistoryCache records a watch history cache lookup.
func RecordHistoryCache(hit bool) {
	if hit {
		HistoryCacheHits.Inc()
	} else {
		HistoryCacheMisses.Inc()
	}
}

// RecordHistoryAppend records an append to a watch history.
func RecordHistoryAppend(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	HistoryAppends.WithLabelValues(result).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
