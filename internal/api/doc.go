// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package api serves the recommendation engine over HTTP using the chi router.

Routes:

	POST /api/v1/recommendations              classify text and recommend
	POST /api/v1/recommendations/regenerate   re-run discovery for a known emotion
	GET  /api/v1/users/{userID}/watched       watch history
	POST /api/v1/users/{userID}/watched       append a watched movie (201)
	GET  /api/v1/genres                       genre catalog in ascending ID order
	GET  /api/v1/health                       catalog status
	GET  /metrics                             Prometheus metrics

Middleware order: request ID, RealIP, Recoverer, CORS, then per-IP rate
limiting, security headers and Prometheus metrics on the /api/v1 group.

All responses use the models.APIResponse envelope. Classifier and catalog
fetch failures never surface as errors: they degrade the result and are
reported through the no_signal and fallback_used flags.
*/
package api
