// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/metrics"
)

// SessionCleaner is the part of session.Store the sweeper needs.
type SessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

const (
	defaultSweepInterval = time.Minute
	sweepTimeout         = 30 * time.Second

	// maxConsecutiveSweepFailures is how many failed sweeps in a row are
	// tolerated before Serve returns and suture restarts the service.
	maxConsecutiveSweepFailures = 5
)

// SessionSweeperService purges expired sessions on a fixed interval.
type SessionSweeperService struct {
	store    SessionCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string

	failures int
}

// NewSessionSweeperService creates a sweeper. A non-positive interval means
// one minute.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSessionSweeperService(store SessionCleaner, interval time.Duration, logger zerolog.Logger) *SessionSweeperService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SessionSweeperService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "session-sweeper").Logger(),
		name:     "session-sweeper",
	}
}

// Serve implements suture.Service.
func (s *SessionSweeperService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.failures++
				s.logger.Warn().Err(err).Int("consecutive_failures", s.failures).Msg("session sweep failed")
				if s.failures >= maxConsecutiveSweepFailures {
					s.failures = 0
					return fmt.Errorf("session sweeper: %d consecutive failures: %w", maxConsecutiveSweepFailures, err)
				}
				continue
			}
			s.failures = 0
		}
	}
}

// sweep runs one cleanup pass.
func (s *SessionSweeperService) sweep(ctx context.Context) error {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	removed, err := s.store.CleanupExpired(sweepCtx)
	if err != nil {
		return fmt.Errorf("cleanup expired: %w", err)
	}
	metrics.RecordSessionsExpired(removed)

	active, err := s.store.Count(sweepCtx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	metrics.SetActiveSessions(active)

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Int("active", active).Msg("expired sessions swept")
	}
	return nil
}

// String returns the service name for logging.
func (s *SessionSweeperService) String() string {
	return s.name
}
