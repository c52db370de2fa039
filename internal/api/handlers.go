// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package api

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/castmatch/internal/config"
	"github.com/tomtom215/castmatch/internal/recommend"
	"github.com/tomtom215/castmatch/internal/recommend/intent"
	"github.com/tomtom215/castmatch/internal/recommend/personalize"
	"github.com/tomtom215/castmatch/internal/recommend/semantic"
	"github.com/tomtom215/castmatch/internal/session"
	ws "github.com/tomtom215/castmatch/internal/websocket"
)

// Deps are the components the handlers serve.
type Deps struct {
	Context     *recommend.EngineContext
	Recommender *recommend.Engine
	Intent      *intent.Engine
	Semantic    *semantic.Engine
	Personal    *personalize.Engine
	Store       session.Store
	StoreType   session.StoreType
	Hub         *ws.Hub
	API         config.APIConfig
}

// Handler holds the HTTP handlers. Methods are split by resource:
//   - handlers_recommend.go: recommend and explain
//   - handlers_sessions.go: session lifecycle and feedback
//   - handlers_intent.go, handlers_search.go: single-engine endpoints
//   - handlers_catalog.go, handlers_health.go
//   - handlers_websocket.go: /ws
type Handler struct {
	deps       Deps
	middleware *ChiMiddleware
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
	startTime  time.Time
}

// NewHandler validates deps and builds the handler set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(deps Deps, logger zerolog.Logger) (*Handler, error) {
	switch {
	case deps.Context == nil, deps.Recommender == nil:
		return nil, errors.New("api: engine context and recommender are required")
	case deps.Intent == nil, deps.Semantic == nil, deps.Personal == nil:
		return nil, errors.New("api: intent, semantic and personalization engines are required")
	case deps.Store == nil, deps.Hub == nil:
		return nil, errors.New("api: session store and websocket hub are required")
	}

	h := &Handler{
		deps:       deps,
		middleware: NewChiMiddleware(ChiMiddlewareConfigFrom(&deps.API)),
		logger:     logger.With().Str("component", "api").Logger(),
		startTime:  time.Now(),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      h.checkWebSocketOrigin,
	}
	return h, nil
}

// newLimiter returns the per-connection WebSocket limiter, or nil when
// limiting is off.
func (h *Handler) newLimiter() *rate.Limiter {
	if h.deps.API.WSMessagesPerSecond <= 0 {
		return nil
	}
	burst := h.deps.API.WSBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(h.deps.API.WSMessagesPerSecond), burst)
}
