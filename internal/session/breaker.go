// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/castmatch/internal/metrics"
)

// BreakerStore guards a Store with a circuit breaker. Lookups of unknown
// or expired sessions are normal outcomes and never trip it.
type BreakerStore struct {
	next   Store
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

// NewBreakerStore wraps next. The breaker opens after failures consecutive
// backend errors and probes again after timeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerStore(next Store, failures uint32, timeout time.Duration, logger zerolog.Logger) *BreakerStore {
	b := &BreakerStore{
		next:   next,
		logger: logger.With().Str("component", "session-breaker").Logger(),
	}
	metrics.SetBreakerState(stateToInt(gobreaker.StateClosed))

	b.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "session-store",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsUnknown(err) || errors.Is(err, ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Session store breaker state change")
			metrics.SetBreakerState(stateToInt(to))
		},
	})
	return b
}

func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return res, err
}

// Get retrieves a session through the breaker.
func (b *BreakerStore) Get(ctx context.Context, id string) (*Session, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s, ok := res.(*Session)
	if !ok {
		return nil, fmt.Errorf("session breaker: unexpected result type %T", res)
	}
	return s, nil
}

// Put writes a session through the breaker.
func (b *BreakerStore) Put(ctx context.Context, s *Session) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.Put(ctx, s)
	})
	return err
}

// Delete removes a session through the breaker.
func (b *BreakerStore) Delete(ctx context.Context, id string) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.next.Delete(ctx, id)
	})
	return err
}

// CleanupExpired sweeps through the breaker.
func (b *BreakerStore) CleanupExpired(ctx context.Context) (int, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.CleanupExpired(ctx)
	})
	if err != nil {
		return 0, err
	}
	n, _ := res.(int)
	return n, nil
}

// Count is not guarded; it is only used for health reporting.
func (b *BreakerStore) Count(ctx context.Context) (int, error) {
	return b.next.Count(ctx)
}

// State returns the breaker state name.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

// Close closes the wrapped store.
func (b *BreakerStore) Close() error {
	return b.next.Close()
}

func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
