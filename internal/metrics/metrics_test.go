// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := RecommendationConfidence.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cold"))
	samples := histogramCount(t)

	RecordRecommendation("cold", 0.76, 300*time.Microsecond)

	if got := histogramCount(t); got != samples+1 {
		t.Errorf("confidence samples = %d, want %d", got, samples+1)
	}

	after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cold"))
	if after != before+1 {
		t.Errorf("RecommendationsTotal{cold} = %v, want %v", after, before+1)
	}
}

func TestRecordStoreOp(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "ok"},
		{"failure", errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SessionStoreOps.WithLabelValues("badger", "put", tt.result)
			before := testutil.ToFloat64(c)
			RecordStoreOp("badger", "put", tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("SessionStoreOps{%s} = %v, want %v", tt.result, got, before+1)
			}
		})
	}
}

func TestRecordSessionsExpiredIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(SessionsExpired)
	RecordSessionsExpired(0)
	RecordSessionsExpired(3)
	if got := testutil.ToFloat64(SessionsExpired); got != before+3 {
		t.Errorf("SessionsExpired = %v, want %v", got, before+3)
	}
}

func TestGauges(t *testing.T) {
	SetBreakerState(2)
	if got := testutil.ToFloat64(SessionStoreBreakerState); got != 2 {
		t.Errorf("SessionStoreBreakerState = %v, want 2", got)
	}
	SetBreakerState(0)

	SetActiveSessions(7)
	if got := testutil.ToFloat64(ActiveSessions); got != 7 {
		t.Errorf("ActiveSessions = %v, want 7", got)
	}

	base := testutil.ToFloat64(WebSocketConnections)
	TrackWebSocket(true)
	TrackWebSocket(true)
	TrackWebSocket(false)
	if got := testutil.ToFloat64(WebSocketConnections); got != base+1 {
		t.Errorf("WebSocketConnections = %v, want %v", got, base+1)
	}
}

func TestFeedbackCounter(t *testing.T) {
	RecordFeedback("negative")
	if got := testutil.CollectAndCount(FeedbackTotal); got < 1 {
		t.Errorf("CollectAndCount(FeedbackTotal) = %d, want >= 1", got)
	}
}

func TestSemanticCacheLookups(t *testing.T) {
	hits := testutil.ToFloat64(SemanticCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(SemanticCacheLookups.WithLabelValues("miss"))

	RecordSemanticCacheLookup(false)
	RecordSemanticCacheLookup(true)
	RecordSemanticCacheLookup(true)

	if got := testutil.ToFloat64(SemanticCacheLookups.WithLabelValues("hit")) - hits; got != 2 {
		t.Errorf("hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(SemanticCacheLookups.WithLabelValues("miss")) - misses; got != 1 {
		t.Errorf("misses delta = %v, want 1", got)
	}
}
