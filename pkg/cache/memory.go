package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/JaimeStill/folio/pkg/lifecycle"
)

type entry struct {
	data    []byte
	expires time.Time
}

type memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// NewMemory creates an in-process cache. A zero ttl never expires entries.
func NewMemory(ttl time.Duration) System {
	return &memory{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (m *memory) Start(lc *lifecycle.Coordinator) error {
	return nil
}

func (m *memory) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		m.Delete(ctx, key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memory) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := entry{data: data}
	if m.ttl > 0 {
		e.expires = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *memory) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}
