// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package models

import "time"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope of every HTTP response.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a structured error payload.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeHistory            = "HISTORY_ERROR"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)
