// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/moodreel/internal/models"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		skipCatalog bool
		wantStatus  string
		wantGenres  int
	}{
		{"catalog loaded", false, "healthy", 4},
		{"catalog missing", true, "degraded", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _ := newTestServer(t, testServerOptions{skipCatalog: tt.skipCatalog})
			rr := doRequest(t, h, http.MethodGet, "/api/v1/health", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rr.Code)
			}

			health := decodeEnvelope[models.HealthStatus](t, rr).Data
			if health.Status != tt.wantStatus || health.CatalogLoaded == tt.skipCatalog || health.Genres != tt.wantGenres {
				t.Errorf("health = %+v", health)
			}
			if health.Version != "test" {
				t.Errorf("version = %q, want test", health.Version)
			}
		})
	}
}

func TestHealth_ReportsEngineCounters(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, testServerOptions{})
	doRequest(t, h, http.MethodPost, "/api/v1/recommendations/regenerate", `{"user_id":"max"}`)

	health := decodeEnvelope[models.HealthStatus](t, doRequest(t, h, http.MethodGet, "/api/v1/health", "")).Data
	if health.Engine.Requests != 1 || health.Engine.Fallbacks != 1 || health.Engine.NoSignal != 1 {
		t.Errorf("engine stats = %+v, want one fallback request", health.Engine)
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, testServerOptions{})
	rr := doRequest(t, h, http.MethodGet, "/api/v1/genres", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	genres := decodeEnvelope[[]models.GenreView](t, rr).Data
	want := []models.GenreView{
		{ID: 18, Name: "Drama"},
		{ID: 28, Name: "Action"},
		{ID: 35, Name: "Comedy"},
		{ID: 10749, Name: "Romance"},
	}
	if len(genres) != len(want) {
		t.Fatalf("genres = %+v, want %+v", genres, want)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres[%d] = %+v, want %+v", i, genres[i], want[i])
		}
	}
}

func TestGenres_CatalogNotLoaded(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, testServerOptions{skipCatalog: true})
	rr := doRequest(t, h, http.MethodGet, "/api/v1/genres", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, testServerOptions{})

	rr := doRequest(t, h, http.MethodGet, "/api/v1/nope", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rr.Code)
	}
	if env := decodeEnvelope[any](t, rr); env.Error == nil || env.Error.Code != models.ErrCodeNotFound {
		t.Errorf("unknown route envelope = %+v", env)
	}

	rr = doRequest(t, h, http.MethodDelete, "/api/v1/genres", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rr.Code)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, testServerOptions{})
	doRequest(t, h, http.MethodGet, "/api/v1/genres", "")

	rr := doRequest(t, h, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), "api_requests_total") {
		t.Error("metrics output should include api_requests_total")
	}
}
