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
	"github.com/goccy/go-json"

	"github.com/tomtom215/castmatch/internal/metrics"
)

const sessionKeyPrefix = "session:"

// BadgerStore persists sessions in BadgerDB, one JSON value per session.
// Entries carry a TTL matching ExpiresAt, so badger drops them even if the
// sweeper never runs.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerStore wraps an open database. The store owns db and closes it.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// Get retrieves a session by ID.
func (b *BadgerStore) Get(_ context.Context, id string) (*Session, error) {
	var s Session
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err == nil && s.IsExpiredAt(b.now()) {
		err = ErrSessionExpired
	}
	metrics.RecordStoreOp("badger", "get", err)
	if err != nil {
		return nil, err
	}
	if s.PreferenceWeights == nil {
		s.PreferenceWeights = map[string]float64{}
	}
	return &s, nil
}

// Put writes the session in a single transaction.
func (b *BadgerStore) Put(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(s.ID), data)
		if !s.ExpiresAt.IsZero() {
			if ttl := s.ExpiresAt.Sub(b.now()); ttl > 0 {
				entry = entry.WithTTL(ttl)
			}
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
	metrics.RecordStoreOp("badger", "put", err)
	return err
}

// Delete removes a session by ID.
func (b *BadgerStore) Delete(_ context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
	metrics.RecordStoreOp("badger", "delete", err)
	return err
}

// CleanupExpired removes sessions whose ExpiresAt has passed. Entries
// already dropped by their TTL are not counted.
func (b *BadgerStore) CleanupExpired(_ context.Context) (int, error) {
	now := b.now()
	var expired [][]byte

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var s Session
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &s)
			}); err != nil {
				continue
			}
			if s.IsExpiredAt(now) {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreOp("badger", "cleanup", err)
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	if len(expired) > 0 {
		err = b.db.Update(func(txn *badger.Txn) error {
			for _, key := range expired {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	metrics.RecordStoreOp("badger", "cleanup", err)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return len(expired), nil
}

// Count returns the number of stored sessions.
func (b *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
