// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package emotion classifies free text into an emotion label using the
// HuggingFace Inference API.
package emotion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/breaker"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/recommend"
)

const maxErrorBodySize = 64 * 1024 // 64KB

// DefaultModel is a DistilRoBERTa model fine-tuned on Ekman's six basic
// emotions plus neutral.
const DefaultModel = "j-hartmann/emotion-english-distilroberta-base"

// ErrEmptyResponse is returned when the model yields no scores.
var ErrEmptyResponse = errors.New("classifier returned no scores")

// Config configures the HuggingFace classifier.
type Config struct {
	BaseURL  string
	APIToken string
	Model    string
	Timeout  time.Duration
}

// DefaultConfig returns the settings of the hosted Inference API.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api-inference.huggingface.co",
		Model:   DefaultModel,
		Timeout: 15 * time.Second,
	}
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Classifier) { c.httpClient = hc }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *breaker.Client) Option {
	return func(c *Classifier) { c.breaker = b }
}

// Classifier implements recommend.EmotionClassifier.
type Classifier struct {
	endpoint   string
	token      string
	httpClient *http.Client
	breaker    *breaker.Client
	logger     zerolog.Logger
}

var _ recommend.EmotionClassifier = (*Classifier)(nil)

// Score is one label/score pair of a classification.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type requestBody struct {
	Inputs string `json:"inputs"`
}

// NewClassifier creates a HuggingFace emotion classifier.
//
//nolint:gocritic // hugeParam: cfg is copied once at construction
func NewClassifier(cfg Config, logger zerolog.Logger, opts ...Option) (*Classifier, error) {
	if cfg.APIToken == "" {
		return nil, errors.New("huggingface api token is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("huggingface base url is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	c := &Classifier{
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/models/" + cfg.Model,
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "emotion").Str("model", cfg.Model).Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = breaker.New(breaker.DefaultSettings("huggingface-api"))
	}
	return c, nil
}

// Classify returns the highest scoring emotion for text. Neutral results and
// blank input return recommend.EmotionNone; blank input makes no request.
func (c *Classifier) Classify(ctx context.Context, text string) (recommend.EmotionLabel, error) {
	if strings.TrimSpace(text) == "" {
		return recommend.EmotionNone, nil
	}

	start := time.Now()
	scores, err := breaker.Execute(c.breaker, func() ([]Score, error) {
		return c.scores(ctx, text)
	})
	metrics.RecordUpstreamCall("huggingface", "classify", time.Since(start), err)
	if err != nil {
		return recommend.EmotionNone, fmt.Errorf("classify emotion: %w", err)
	}

	best, ok := TopScore(scores)
	if !ok {
		return recommend.EmotionNone, ErrEmptyResponse
	}

	label := recommend.EmotionLabel(best.Label).Normalize()
	c.logger.Debug().Str("label", string(label)).Float64("score", best.Score).Msg("emotion detected")

	if label == recommend.EmotionNeutral {
		return recommend.EmotionNone, nil
	}
	return label, nil
}

func (c *Classifier) scores(ctx context.Context, text string) ([]Score, error) {
	payload, err := json.Marshal(requestBody{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return ParseScores(raw)
}

// ParseScores decodes an Inference API classification body. The API returns
// a nested array ([[{label,score}...]]) for a single input, and some
// deployments return the flat form ([{label,score}...]). Only the first
// input's scores are returned.
func ParseScores(raw []byte) ([]Score, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}

	if raw[0] == '{' {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("inference api error: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("unexpected response object: %s", truncate(raw, 200))
	}

	var nested [][]Score
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrEmptyResponse
		}
		return nested[0], nil
	}

	var flat []Score
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return flat, nil
}

// TopScore returns the highest scoring entry. Ties keep the earliest entry.
func TopScore(scores []Score) (Score, bool) {
	if len(scores) == 0 {
		return Score{}, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
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
