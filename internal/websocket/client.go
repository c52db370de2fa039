// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/castmatch/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendQueueSize  = 64
)

var clientIDCounter atomic.Uint64

// Handler answers one recommend frame. It returns the response payload and
// the session the request ran under ("" for none), or an API error.
type Handler func(ctx context.Context, data json.RawMessage) (payload interface{}, sessionID string, apiErr *models.APIError)

// Client is one WebSocket connection.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	handler Handler
	limiter *rate.Limiter
	logger  zerolog.Logger

	mu        sync.RWMutex
	sessionID string

	ctx    context.Context
	cancel context.CancelFunc

	// sendMu guards send against writes after close.
	sendMu sync.Mutex
	closed bool
}

// NewClient wraps conn. A nil limiter disables per-connection rate limiting.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(hub *Hub, conn *websocket.Conn, handler Handler, limiter *rate.Limiter, logger zerolog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	id := clientIDCounter.Add(1)
	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, sendQueueSize),
		handler: handler,
		limiter: limiter,
		logger:  logger.With().Str("component", "websocket-client").Uint64("client_id", id).Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ID returns the connection-ordered client ID.
func (c *Client) ID() uint64 {
	return c.id
}

// Bind attaches the client to a session so it receives that session's events.
func (c *Client) Bind(sessionID string) {
	c.mu.Lock()
	c.sessionID = sessionID
	c.mu.Unlock()
}

// SessionID returns the bound session or "".
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Start runs the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) enqueue(msg Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.send)
}

func (c *Client) sendError(id, code, message string) {
	c.enqueue(Message{Type: MessageTypeError, ID: id, Data: &models.APIError{Code: code, Message: message}})
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			c.sendError("", models.ErrCodeInvalidInput, "malformed message")
			continue
		}
		c.dispatch(&in)
	}
}

func (c *Client) dispatch(in *inbound) {
	switch in.Type {
	case MessageTypePing:
		c.enqueue(Message{Type: MessageTypePong, ID: in.ID})

	case MessageTypeRecommend:
		if c.limiter != nil && !c.limiter.Allow() {
			c.sendError(in.ID, models.ErrCodeRateLimited, "too many recommend messages")
			return
		}
		payload, sessionID, apiErr := c.handler(c.ctx, in.Data)
		if apiErr != nil {
			c.enqueue(Message{Type: MessageTypeError, ID: in.ID, Data: apiErr})
			return
		}
		if sessionID != "" {
			c.Bind(sessionID)
		}
		c.enqueue(Message{Type: MessageTypeRecommendation, ID: in.ID, Data: payload})

	default:
		c.sendError(in.ID, models.ErrCodeInvalidInput, "unknown message type "+in.Type)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error().Err(err).Str("message_type", msg.Type).Msg("failed to encode message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
