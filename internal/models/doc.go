// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package models defines the JSON shapes of the HTTP API.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {"timestamp": "2026-01-02T15:04:05Z", "query_time_ms": 12}
	}

Errors set status to "error" and fill the error field with a machine-readable
code such as VALIDATION_ERROR or CATALOG_UNAVAILABLE.

Request bodies carry validate tags consumed by internal/validation. Response
views denormalise the engine types for clients: movies gain a release year,
a full poster URL and genre names.
*/
package models
