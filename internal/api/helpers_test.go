// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/history"
	"github.com/tomtom215/moodreel/internal/models"
	"github.com/tomtom215/moodreel/internal/recommend"
)

const testImageBase = "https://image.tmdb.org/t/p/w500"

type fakeClassifier struct {
	label recommend.EmotionLabel
	err   error
}

func (f fakeClassifier) Classify(context.Context, string) (recommend.EmotionLabel, error) {
	return f.label, f.err
}

type fakeCatalogSource map[recommend.GenreID]string

func (f fakeCatalogSource) Genres(context.Context) (map[recommend.GenreID]string, error) {
	return f, nil
}

type fakeCandidates map[recommend.GenreID][]recommend.Movie

func (f fakeCandidates) Discover(_ context.Context, genre recommend.GenreID) ([]recommend.Movie, error) {
	return f[genre], nil
}

type failingHistory struct{}

func (failingHistory) Load(context.Context, string) ([]recommend.Movie, error) {
	return nil, errors.New("disk on fire")
}

func (failingHistory) Append(context.Context, string, recommend.Movie) error {
	return errors.New("disk on fire")
}

var testCatalog = fakeCatalogSource{
	recommend.GenreAction:  "Action",
	recommend.GenreComedy:  "Comedy",
	recommend.GenreDrama:   "Drama",
	recommend.GenreRomance: "Romance",
}

var testCandidates = fakeCandidates{
	recommend.GenreDrama: {
		{ID: 1, Title: "Tearjerker", GenreIDs: []recommend.GenreID{recommend.GenreDrama}, VoteCount: 900, ReleaseDate: "2019-05-30", PosterPath: "/one.jpg"},
		{ID: 2, Title: "Love Story", GenreIDs: []recommend.GenreID{recommend.GenreRomance}, VoteCount: 900},
	},
	recommend.GenreRomance: {
		{ID: 2, Title: "Love Story", GenreIDs: []recommend.GenreID{recommend.GenreRomance}, VoteCount: 950},
		{ID: 3, Title: "Obscure", GenreIDs: []recommend.GenreID{recommend.GenreRomance}, VoteCount: 100},
	},
	recommend.GenreComedy: {
		{ID: 4, Title: "Laughs", GenreIDs: []recommend.GenreID{recommend.GenreComedy}, VoteCount: 2000},
	},
}

type testServerOptions struct {
	classifier    recommend.EmotionClassifier
	history       recommend.HistoryStore
	skipCatalog   bool
	middlewareCfg *ChiMiddlewareConfig
}

// newTestServer builds a router around a real engine with in-memory fakes.
func newTestServer(t *testing.T, opts testServerOptions) (http.Handler, *recommend.Engine) {
	t.Helper()

	if opts.classifier == nil {
		opts.classifier = fakeClassifier{label: recommend.EmotionSadness}
	}
	if opts.history == nil {
		opts.history = history.NewMemoryStore()
	}
	if opts.middlewareCfg == nil {
		opts.middlewareCfg = DefaultChiMiddlewareConfig()
		opts.middlewareCfg.RateLimitDisabled = true
	}

	engine, err := recommend.NewEngine(nil, recommend.Dependencies{
		Classifier: opts.classifier,
		Catalog:    testCatalog,
		Candidates: testCandidates,
		History:    opts.history,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if !opts.skipCatalog {
		if err := engine.LoadCatalog(context.Background()); err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
	}

	handler := NewHandler(engine, HandlerConfig{ImageBaseURL: testImageBase, Version: "test"})
	return NewRouter(handler, opts.middlewareCfg).Setup(), engine
}

type envelope[T any] struct {
	Status string           `json:"status"`
	Data   T                `json:"data"`
	Error  *models.APIError `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rr.Body.String())
	}
	return env
}
