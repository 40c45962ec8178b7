// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package tmdb implements the genre catalog and candidate discovery sources
// on top of The Movie Database REST API.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/cache"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/recommend"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// ErrMissingToken is returned by NewClient when no API token is configured.
var ErrMissingToken = errors.New("tmdb api token is required")

// Config configures the TMDB client.
type Config struct {
	BaseURL        string
	APIToken       string
	Language       string
	MinVoteAverage float64
	MaxPage        int
	Timeout        time.Duration

	// RateLimit is requests per second; 0 disables throttling.
	RateLimit float64
	Burst     int

	// CacheTTL for discover pages; 0 disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns the settings of the public TMDB v3 API.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://api.themoviedb.org/3",
		Language:       "es",
		MinVoteAverage: 7,
		MaxPage:        5,
		Timeout:        10 * time.Second,
		RateLimit:      20,
		Burst:          10,
		CacheTTL:       10 * time.Minute,
	}
}

// PageFunc picks the discover page to request, in [1, maxPage].
type PageFunc func(maxPage int) int

func randomPage(maxPage int) int {
	return rand.IntN(maxPage) + 1
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageFunc replaces the random page picker.
func WithPageFunc(fn PageFunc) Option {
	return func(c *Client) { c.pageFn = fn }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *breaker.Client) Option {
	return func(c *Client) { c.breaker = b }
}

// Client talks to TMDB. It implements recommend.CatalogSource and
// recommend.CandidateSource and is safe for concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker.Client
	discover   *cache.Cache[[]recommend.Movie]
	pageFn     PageFunc
	logger     zerolog.Logger
}

var (
	_ recommend.CatalogSource   = (*Client)(nil)
	_ recommend.CandidateSource = (*Client)(nil)
)

// NewClient creates a TMDB client.
//
//nolint:gocritic // hugeParam: cfg is copied once at construction
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.APIToken == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("tmdb base url is required")
	}
	if cfg.MaxPage < 1 {
		return nil, fmt.Errorf("tmdb max page must be at least 1, got %d", cfg.MaxPage)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		pageFn:     randomPage,
		logger:     logger.With().Str("component", "tmdb").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = breaker.New(breaker.DefaultSettings("tmdb-api"))
	}
	if cfg.CacheTTL > 0 {
		c.discover = cache.New[[]recommend.Movie](cfg.CacheTTL, 0)
	}
	return c, nil
}

// Close stops the discover cache sweeper.
func (c *Client) Close() error {
	if c.discover != nil {
		c.discover.Close()
	}
	return nil
}

// Genres fetches the movie genre list in the configured language.
func (c *Client) Genres(ctx context.Context) (map[recommend.GenreID]string, error) {
	query := url.Values{}
	query.Set("language", c.cfg.Language)

	var body genreListResponse
	if err := c.get(ctx, "genres", "/genre/movie/list", query, &body); err != nil {
		return nil, fmt.Errorf("fetch genres: %w", err)
	}

	genres := make(map[recommend.GenreID]string, len(body.Genres))
	for _, g := range body.Genres {
		genres[recommend.GenreID(g.ID)] = g.Name
	}
	return genres, nil
}

type discoverKey struct {
	Genre    int    `json:"genre"`
	Page     int    `json:"page"`
	Language string `json:"language"`
}

// Discover returns one page of popular, well-rated movies in genre. The page
// is chosen by the client's PageFunc so repeated calls vary the results.
func (c *Client) Discover(ctx context.Context, genre recommend.GenreID) ([]recommend.Movie, error) {
	page := c.pageFn(c.cfg.MaxPage)
	if page < 1 || page > c.cfg.MaxPage {
		page = 1
	}

	key := cache.GenerateKey("discover", discoverKey{Genre: int(genre), Page: page, Language: c.cfg.Language})
	if c.discover != nil {
		if movies, ok := c.discover.Get(key); ok {
			metrics.RecordDiscoverCache(true)
			return slices.Clone(movies), nil
		}
		metrics.RecordDiscoverCache(false)
	}

	query := url.Values{}
	query.Set("language", c.cfg.Language)
	query.Set("vote_average.gte", strconv.FormatFloat(c.cfg.MinVoteAverage, 'f', -1, 64))
	query.Set("sort_by", "popularity.desc")
	query.Set("with_genres", strconv.Itoa(int(genre)))
	query.Set("page", strconv.Itoa(page))

	var body discoverResponse
	if err := c.get(ctx, "discover", "/discover/movie", query, &body); err != nil {
		return nil, fmt.Errorf("discover genre %d page %d: %w", genre, page, err)
	}

	movies := make([]recommend.Movie, 0, len(body.Results))
	for i := range body.Results {
		movies = append(movies, body.Results[i].toMovie())
	}

	if c.discover != nil {
		c.discover.Set(key, slices.Clone(movies))
	}

	c.logger.Debug().
		Int("genre", int(genre)).
		Int("page", page).
		Int("results", len(movies)).
		Msg("discover page fetched")

	return movies, nil
}

// CacheStats returns discover cache statistics, or zero stats when caching is off.
func (c *Client) CacheStats() cache.Stats {
	if c.discover == nil {
		return cache.Stats{}
	}
	return c.discover.GetStats()
}

// get performs a throttled, breaker-protected GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	_, err := breaker.Execute(c.breaker, func() (struct{}, error) {
		return struct{}{}, c.doGet(ctx, path, query, out)
	})
	metrics.RecordUpstreamCall("tmdb", operation, time.Since(start), err)
	return err
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
