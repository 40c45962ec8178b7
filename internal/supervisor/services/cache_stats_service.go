// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"time"

	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/metrics"
)

// CacheStatsSource exposes cache statistics. *tmdb.Client implements it.
type CacheStatsSource interface {
	CacheStats() cache.Stats
}

// CacheStatsService periodically publishes discover cache statistics as
// Prometheus gauges.
type CacheStatsService struct {
	source   CacheStatsSource
	interval time.Duration
	name     string
}

// NewCacheStatsService creates the reporter. A non-positive interval means 1m.
func NewCacheStatsService(source CacheStatsSource, interval time.Duration) *CacheStatsService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheStatsService{
		source:   source,
		interval: interval,
		name:     "cache-stats",
	}
}

// Serve implements suture.Service.
func (s *CacheStatsService) Serve(ctx context.Context) error {
	s.publish()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.publish()
		}
	}
}

func (s *CacheStatsService) publish() {
	stats := s.source.CacheStats()
	metrics.SetDiscoverCacheSize(stats.TotalKeys, stats.Evictions)
}

// String implements fmt.Stringer for supervisor logs.
func (s *CacheStatsService) String() string {
	return s.name
}
