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

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns a copy of the session.
	// Returns ErrSessionNotFound if absent, ErrSessionExpired if past expiry.
	Get(ctx context.Context, id string) (*Session, error)

	// Put writes the whole session, replacing any previous version.
	Put(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// CleanupExpired removes expired sessions and returns how many it removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Count returns the number of stored sessions, expired or not.
	Count(ctx context.Context) (int, error)

	// Close releases the backend.
	Close() error
}

// StoreType selects a backend.
type StoreType string

const (
	// StoreMemory keeps sessions in process memory.
	StoreMemory StoreType = "memory"

	// StoreBadger persists sessions in a BadgerDB directory.
	StoreBadger StoreType = "badger"
)

// Options configures Open.
type Options struct {
	Type StoreType

	// Path is the badger directory. Empty selects an in-memory badger.
	Path string

	// BreakerFailures is the consecutive failure count that trips the
	// breaker; zero leaves the store unwrapped.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Open builds the configured store, wrapped in a circuit breaker when
// BreakerFailures is set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(opts Options, logger zerolog.Logger) (Store, error) {
	var store Store
	switch opts.Type {
	case StoreMemory, "":
		store = NewMemoryStore()
	case StoreBadger:
		bopts := badger.DefaultOptions(opts.Path)
		if opts.Path == "" {
			bopts = bopts.WithInMemory(true)
		}
		bopts.Logger = newBadgerLogger(logger)

		db, err := badger.Open(bopts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		store = NewBadgerStore(db)
	default:
		return nil, fmt.Errorf("unknown session store %q", opts.Type)
	}

	if opts.BreakerFailures > 0 {
		store = NewBreakerStore(store, opts.BreakerFailures, opts.BreakerTimeout, logger)
	}
	logger.Info().Str("store", string(opts.Type)).Bool("breaker", opts.BreakerFailures > 0).Msg("Session store opened")
	return store, nil
}

// IsUnknown reports whether err means the session does not exist or has
// expired.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired)
}

// badgerLogger routes badger's internal logging to zerolog, demoting its
// chatty info output to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newBadgerLogger(logger zerolog.Logger) *badgerLogger {
	return &badgerLogger{logger: logger.With().Str("component", "badger").Logger()}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
