package repository

import (
	"context"
	"sync"
	"time"

	errs "trophyseeker/internal/errors"
)

// KeyValueStore is the per-user persistence surface. Values are opaque JSON
// documents; a zero ttl keeps the key forever.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type mapEntry struct {
	value     []byte
	expiresAt time.Time
}

type MapKVStorage struct {
	mu      sync.RWMutex
	entries map[string]mapEntry
	now     func() time.Time
}

func NewMapKVStorage() *MapKVStorage {
	return &MapKVStorage{
		entries: make(map[string]mapEntry),
		now:     time.Now,
	}
}

func (m *MapKVStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()
	if !found {
		return nil, errs.ErrKeyNotFound
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, errs.ErrKeyNotFound
	}
	return append([]byte(nil), entry.value...), nil
}

func (m *MapKVStorage) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := mapEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MapKVStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MapKVStorage) Ping(context.Context) error {
	return nil
}
