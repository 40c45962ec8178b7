// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package middleware provides HTTP middleware for request correlation and
// Prometheus instrumentation. All middleware uses the chi signature
// func(http.Handler) http.Handler.
package middleware
