// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"successful recommendation", "POST", "/api/v1/recommendations", "200", 120 * time.Millisecond},
		{"validation failure", "POST", "/api/v1/recommendations", "400", time.Millisecond},
		{"catalog unavailable", "POST", "/api/v1/recommendations/regenerate", "503", 2 * time.Millisecond},
		{"watch list read", "GET", "/api/v1/users/{userID}/watched", "200", 3 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("api_requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

// TestTrackActiveRequest_RequestLifecycle tests that inc/dec pairs balance out
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("active requests = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name         string
		emotion      string
		wantLabel    string
		outcome      string
		failedRounds int
	}{
		{"ranked joy", "joy", "joy", OutcomeRanked, 0},
		{"fallback for neutral", "", "none", OutcomeFallback, 0},
		{"no signal", "", "none", OutcomeNoSignal, 0},
		{"failed rounds counted", "fear", "fear", OutcomeUnranked, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendationsTotal.WithLabelValues(tt.wantLabel, tt.outcome)
			before := testutil.ToFloat64(counter)
			failuresBefore := testutil.ToFloat64(RecommendationFetchFailures)

			RecordRecommendation(tt.emotion, tt.outcome, 7, tt.failedRounds)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("recommendations_total = %v, want %v", got, before+1)
			}
			if got := testutil.ToFloat64(RecommendationFetchFailures); got < failuresBefore+float64(tt.failedRounds) {
				t.Errorf("fetch failures = %v, want at least %v", got, failuresBefore+float64(tt.failedRounds))
			}
		})
	}
}

func TestRecordUpstreamCall(t *testing.T) {
	errCounter := UpstreamErrors.WithLabelValues("tmdb", "discover")
	before := testutil.ToFloat64(errCounter)

	RecordUpstreamCall("tmdb", "discover", 30*time.Millisecond, nil)
	if got := testutil.ToFloat64(errCounter); got != before {
		t.Errorf("errors after success = %v, want %v", got, before)
	}

	RecordUpstreamCall("tmdb", "discover", 30*time.Millisecond, errors.New("status 500"))
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("errors after failure = %v, want %v", got, before+1)
	}

	// Histogram observations are visible through the client model.
	observer := UpstreamRequestDuration.WithLabelValues("tmdb", "discover")
	m := &dto.Metric{}
	if err := observer.(prometheus.Histogram).Write(m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if m.GetHistogram().GetSampleCount() < 2 {
		t.Errorf("sample count = %d, want at least 2", m.GetHistogram().GetSampleCount())
	}
}

func TestCacheMetrics(t *testing.T) {
	hits := testutil.ToFloat64(DiscoverCacheHits)
	misses := testutil.ToFloat64(DiscoverCacheMisses)

	RecordDiscoverCache(true)
	RecordDiscoverCache(false)
	RecordDiscoverCache(false)

	if got := testutil.ToFloat64(DiscoverCacheHits); got != hits+1 {
		t.Errorf("discover hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(DiscoverCacheMisses); got != misses+2 {
		t.Errorf("discover misses = %v, want %v", got, misses+2)
	}

	historyHits := testutil.ToFloat64(HistoryCacheHits)
	RecordHistoryCache(true)
	if got := testutil.ToFloat64(HistoryCacheHits); got != historyHits+1 {
		t.Errorf("history hits = %v, want %v", got, historyHits+1)
	}

	SetDiscoverCacheSize(12, 3)
	if got := testutil.ToFloat64(DiscoverCacheEntries); got != 12 {
		t.Errorf("discover_cache_entries = %v, want 12", got)
	}
	if got := testutil.ToFloat64(DiscoverCacheEvictions); got != 3 {
		t.Errorf("discover_cache_evictions = %v, want 3", got)
	}
}

func TestRecordHistoryAppend(t *testing.T) {
	ok := HistoryAppends.WithLabelValues("success")
	failed := HistoryAppends.WithLabelValues("error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordHistoryAppend(nil)
	RecordHistoryAppend(errors.New("disk full"))

	if got := testutil.ToFloat64(ok); got != okBefore+1 {
		t.Errorf("success appends = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(failed); got != failedBefore+1 {
		t.Errorf("error appends = %v, want %v", got, failedBefore+1)
	}
}

// TestConcurrentMetricRecording tests metric recording from many goroutines
func TestConcurrentMetricRecording(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/genres", "200")
	before := testutil.ToFloat64(counter)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("GET", "/api/v1/genres", "200", time.Millisecond)
			RecordRecommendation("joy", OutcomeRanked, 3, 0)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(counter); got != before+workers {
		t.Errorf("api_requests_total = %v, want %v", got, before+workers)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendationsTotal,
		RecommendationCandidates,
		RecommendationFetchFailures,
		UpstreamRequestDuration,
		UpstreamErrors,
		DiscoverCacheHits,
		DiscoverCacheMisses,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerConsecutiveFailures,
		CircuitBreakerTransitions,
		HistoryAppends,
		HistoryCacheHits,
		HistoryCacheMisses,
		AppInfo,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("collector has no descriptors")
		}
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("test")

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "app_info" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "version" && lp.GetValue() == "test" {
					return
				}
			}
		}
	}
	t.Error("app_info with version=test not found")
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("POST", "/api/v1/recommendations", "200", 25*time.Millisecond)
	}
}
