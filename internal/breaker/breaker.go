// Moodreel - Emotion Driven Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package breaker wraps sony/gobreaker with Prometheus instrumentation for
// calls to external services.
package breaker

import (
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
)

// ErrCircuitOpen is returned when a call is rejected because the circuit is
// open or the half-open probe budget is exhausted.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Settings configures a Client.
type Settings struct {
	// Name labels logs and metrics.
	Name string

	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval resets the counts while closed.
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// MinRequests needed before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio at or above which the circuit opens.
	FailureRatio float64
}

// DefaultSettings returns the settings used for upstream APIs:
// 3 half-open probes, a 1 minute window, 30 second open timeout,
// opening at a 60% failure rate over at least 10 requests.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Client guards calls with a circuit breaker.
//
// The breaker uses real time for its interval and timeout. Tests that need
// to observe recovery should use short Timeout values.
type Client struct {
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// New creates a circuit breaker client.
func New(s Settings) *Client {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio

			if shouldTrip {
				logging.Warn().
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Client{cb: cb, name: s.Name}
}

// Name returns the breaker name.
func (c *Client) Name() string {
	return c.name
}

// State returns the current state as "closed", "half-open" or "open".
func (c *Client) State() string {
	return stateToString(c.cb.State())
}

// execute runs fn under the breaker. Rejections are reported as ErrCircuitOpen.
func (c *Client) execute(fn func() (any, error)) (any, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Str("breaker", c.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%s: %w", c.name, ErrCircuitOpen)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		counts := c.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)

	return result, nil
}

// Execute runs fn under the client's breaker and returns its typed result.
func Execute[T any](c *Client, fn func() (T, error)) (T, error) {
	return castResult[T](c.execute(func() (any, error) {
		return fn()
	}))
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
