// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

// Package metrics holds the Prometheus instrumentation for Castmatch.
//
// Collectors are registered with the default registry through promauto and
// exposed by the API at /metrics. Callers use the Record* helpers rather
// than touching collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ranking

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "castmatch_recommendations_total",
			Help: "Total recommendations served by session state",
		},
		[]string{"session_state"}, // "cold", "warming", "personalized"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "castmatch_recommendation_duration_seconds",
			Help:    "Time spent producing a recommendation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
		[]string{"session_state"},
	)

	RecommendationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "castmatch_recommendation_confidence",
			Help:    "Distribution of recommendation confidence",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	AmbiguousQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "castmatch_ambiguous_queries_total",
			Help: "Queries classified with at least one ambiguous term",
		},
	)

	LexicalFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "castmatch_lexical_fallbacks_total",
			Help: "Searches whose query embedded to the zero vector",
		},
	)

	SemanticCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "castmatch_semantic_cache_lookups_total",
			Help: "Query score cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Sessions

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "castmatch_feedback_total",
			Help: "Feedback applied to interactions by kind",
		},
		[]string{"feedback"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "castmatch_sessions_started_total",
			Help: "Sessions created",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "castmatch_sessions_expired_total",
			Help: "Sessions removed by the expiry sweeper",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "castmatch_active_sessions",
			Help: "Unexpired sessions in the store as of the last sweep",
		},
	)

	SessionStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "castmatch_session_store_operations_total",
			Help: "Session store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)

	SessionStoreBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "castmatch_session_store_breaker_state",
			Help: "Session store circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// API

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "castmatch_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "castmatch_api_active_requests",
			Help: "In-flight HTTP requests",
		},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "castmatch_websocket_connections",
			Help: "Open WebSocket connections",
		},
	)
)

// RecordRecommendation records one served recommendation.
func RecordRecommendation(state string, confidence float64, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(state).Inc()
	RecommendationDuration.WithLabelValues(state).Observe(duration.Seconds())
	RecommendationConfidence.Observe(confidence)
}

// RecordAmbiguousQuery counts a query with unresolved ambiguity.
func RecordAmbiguousQuery() {
	AmbiguousQueries.Inc()
}

// RecordLexicalFallback counts a zero-vector search.
func RecordLexicalFallback() {
	LexicalFallbacks.Inc()
}

// RecordSemanticCacheLookup counts a query score cache lookup.
func RecordSemanticCacheLookup(hit bool) {
	if hit {
		SemanticCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	SemanticCacheLookups.WithLabelValues("miss").Inc()
}

// RecordFeedback counts applied feedback.
func RecordFeedback(kind string) {
	FeedbackTotal.WithLabelValues(kind).Inc()
}

// RecordSessionStarted counts a created session.
func RecordSessionStarted() {
	SessionsStarted.Inc()
}

// RecordSessionsExpired adds n swept sessions.
func RecordSessionsExpired(n int) {
	if n > 0 {
		SessionsExpired.Add(float64(n))
	}
}

// SetActiveSessions publishes the store's session count.
func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}

// RecordStoreOp records one session store call.
func RecordStoreOp(backend, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	SessionStoreOps.WithLabelValues(backend, operation, result).Inc()
}

// SetBreakerState publishes the store breaker state.
func SetBreakerState(state int) {
	SessionStoreBreakerState.Set(float64(state))
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// TrackWebSocket moves the open connection gauge.
func TrackWebSocket(open bool) {
	if open {
		WebSocketConnections.Inc()
	} else {
		WebSocketConnections.Dec()
	}
}
