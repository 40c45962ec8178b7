// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package services adapts moodreel components to suture.Service.
//
// Each wrapper implements Serve(ctx) error and String() for supervisor logs:
//   - HTTPServerService: runs an *http.Server with graceful shutdown
//   - CatalogService: loads the genre catalog, retrying until it succeeds
//   - CacheStatsService: publishes discover cache statistics to Prometheus
package services
