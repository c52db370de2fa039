// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/castmatch/internal/metrics"
)

// Message types.
const (
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
	MessageTypeRecommend      = "recommend"
	MessageTypeRecommendation = "recommendation"
	MessageTypeSessionUpdated = "session_updated"
	MessageTypeError          = "error"
)

// Message is an outbound frame. ID echoes the request's ID when the frame
// answers one.
type Message struct {
	Type string      `json:"type"`
	ID   string      `json:"id,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// inbound is a client frame before its payload is decoded.
type inbound struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type sessionMessage struct {
	sessionID string
	msg       Message
}

// Hub tracks connected clients and fans session events out to the clients
// bound to that session. Serve must be running for Publish to deliver.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	publish chan sessionMessage
	logger  zerolog.Logger
}

// NewHub creates a hub.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		publish: make(chan sessionMessage, 256),
		logger:  logger.With().Str("component", "websocket-hub").Logger(),
	}
}

// Register adds a client.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.TrackWebSocket(true)
	h.logger.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client connected")
}

// Unregister removes a client and closes its send queue. Unknown clients
// are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.closeSend()
	metrics.TrackWebSocket(false)
	h.logger.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client disconnected")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishSession queues a message for every client bound to sessionID.
// It never blocks; a full queue drops the message.
func (h *Hub) PublishSession(sessionID, msgType string, data interface{}) {
	if sessionID == "" {
		return
	}
	select {
	case h.publish <- sessionMessage{sessionID: sessionID, msg: Message{Type: msgType, Data: data}}:
	default:
		h.logger.Warn().Str("message_type", msgType).Msg("publish queue full, dropping session message")
	}
}

// Serve delivers published messages until ctx is canceled, then closes
// every client. It implements suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		// Shutdown wins over pending publishes.
		select {
		case <-ctx.Done():
			n := h.closeAll()
			h.logger.Info().Int("clients_closed", n).Msg("websocket hub stopped")
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			n := h.closeAll()
			h.logger.Info().Int("clients_closed", n).Msg("websocket hub stopped")
			return ctx.Err()
		case sm := <-h.publish:
			h.deliver(sm)
		}
	}
}

// String implements fmt.Stringer for suture's logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// sortedClients returns clients in connection order. Callers hold mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

func (h *Hub) deliver(sm sessionMessage) {
	h.mu.RLock()
	clients := h.sortedClients()
	h.mu.RUnlock()

	for _, c := range clients {
		if c.SessionID() != sm.sessionID {
			continue
		}
		if !c.enqueue(sm.msg) {
			h.logger.Warn().Uint64("client_id", c.id).Msg("client send queue full, disconnecting")
			h.Unregister(c)
		}
	}
}

func (h *Hub) closeAll() int {
	h.mu.Lock()
	clients := h.sortedClients()
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.closeSend()
		metrics.TrackWebSocket(false)
	}
	return len(clients)
}
