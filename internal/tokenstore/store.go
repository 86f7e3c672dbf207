// Package tokenstore keeps bearer tokens in durable storage, keyed by browser session id.
package tokenstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when no token is stored under a key.
var ErrNotFound = errors.New("token not found")

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("stored token corrupt")

// Store persists one token per key. A zero ttl keeps the token until deleted.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Slot is a Store bound to a single key.
type Slot struct {
	store Store
	key   string
}

// Bind returns the slot for key.
func Bind(store Store, key string) Slot {
	return Slot{store: store, key: key}
}

// Key returns the bound key.
func (s Slot) Key() string { return s.key }

func (s Slot) Load(ctx context.Context) (string, error) {
	return s.store.Load(ctx, s.key)
}

func (s Slot) Save(ctx context.Context, token string, ttl time.Duration) error {
	return s.store.Save(ctx, s.key, token, ttl)
}

func (s Slot) Delete(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// Memory is a process-local Store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *Memory) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", ErrNotFound
	}
	return entry.token, nil
}

func (m *Memory) Save(_ context.Context, key, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{token: token}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len reports how many keys are held, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
