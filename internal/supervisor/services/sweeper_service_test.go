// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/castmatch/internal/metrics"
)

var _ suture.Service = (*SessionSweeperService)(nil)

type fakeCleaner struct {
	removed int
	active  int
	err     error
	sweeps  atomic.Int32
}

func (f *fakeCleaner) CleanupExpired(context.Context) (int, error) {
	f.sweeps.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return f.removed, nil
}

func (f *fakeCleaner) Count(context.Context) (int, error) {
	return f.active, nil
}

func TestSessionSweeperSweepRecordsMetrics(t *testing.T) {
	store := &fakeCleaner{removed: 4, active: 9}
	svc := NewSessionSweeperService(store, time.Hour, zerolog.Nop())

	before := testutil.ToFloat64(metrics.SessionsExpired)
	if err := svc.sweep(context.Background()); err != nil {
		t.Fatalf("sweep() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.SessionsExpired); got != before+4 {
		t.Errorf("SessionsExpired = %v, want %v", got, before+4)
	}
	if got := testutil.ToFloat64(metrics.ActiveSessions); got != 9 {
		t.Errorf("ActiveSessions = %v, want 9", got)
	}
}

func TestSessionSweeperSweepError(t *testing.T) {
	storeErr := errors.New("badger closed")
	svc := NewSessionSweeperService(&fakeCleaner{err: storeErr}, time.Hour, zerolog.Nop())

	if err := svc.sweep(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("sweep() = %v, want wrapped %v", err, storeErr)
	}
}

func TestSessionSweeperDefaultInterval(t *testing.T) {
	svc := NewSessionSweeperService(&fakeCleaner{}, 0, zerolog.Nop())
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
	if svc.String() != "session-sweeper" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestSessionSweeperServeTicks(t *testing.T) {
	store := &fakeCleaner{}
	svc := NewSessionSweeperService(store, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if store.sweeps.Load() < 2 {
		t.Errorf("sweeps = %d, want at least 2", store.sweeps.Load())
	}
}

func TestSessionSweeperGivesUpAfterConsecutiveFailures(t *testing.T) {
	storeErr := errors.New("disk full")
	store := &fakeCleaner{err: storeErr}
	svc := NewSessionSweeperService(store, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, storeErr) {
		t.Fatalf("Serve() = %v, want wrapped %v", err, storeErr)
	}
	if got := store.sweeps.Load(); got != maxConsecutiveSweepFailures {
		t.Errorf("sweeps = %d, want %d", got, maxConsecutiveSweepFailures)
	}
}
