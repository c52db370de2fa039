// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/castmatch/internal/metrics"
)

// MemoryStore keeps sessions in a map. Contents are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Get returns a copy of the session.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		metrics.RecordStoreOp("memory", "get", ErrSessionNotFound)
		return nil, ErrSessionNotFound
	}
	if s.IsExpiredAt(m.now()) {
		metrics.RecordStoreOp("memory", "get", ErrSessionExpired)
		return nil, ErrSessionExpired
	}
	metrics.RecordStoreOp("memory", "get", nil)
	return s.Clone(), nil
}

// Put stores a copy of s.
func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	c := s.Clone()
	m.mu.Lock()
	m.sessions[s.ID] = c
	m.mu.Unlock()
	metrics.RecordStoreOp("memory", "put", nil)
	return nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	metrics.RecordStoreOp("memory", "delete", nil)
	return nil
}

// CleanupExpired removes expired sessions.
func (m *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, s := range m.sessions {
		if s.IsExpiredAt(now) {
			delete(m.sessions, id)
			count++
		}
	}
	metrics.RecordStoreOp("memory", "cleanup", nil)
	return count, nil
}

// Count returns the number of stored sessions.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// Close drops all sessions.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	return nil
}
