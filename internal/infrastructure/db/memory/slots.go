// Package memory provides an in-process SlotStorage for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hospital-ms/portal/internal/core/ports"
)

type slot struct {
	value     []byte
	expiresAt time.Time
}

// SlotStorage keeps slots in a map. Expired slots are dropped lazily on read.
type SlotStorage struct {
	mu    sync.RWMutex
	slots map[string]slot
	now   func() time.Time
}

func NewSlotStorage() *SlotStorage {
	return &SlotStorage{slots: make(map[string]slot), now: time.Now}
}

func (s *SlotStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	v, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ports.ErrSlotEmpty
	}
	if !v.expiresAt.IsZero() && !s.now().Before(v.expiresAt) {
		s.mu.Lock()
		if cur, ok := s.slots[key]; ok && cur.expiresAt.Equal(v.expiresAt) {
			delete(s.slots, key)
		}
		s.mu.Unlock()
		return nil, ports.ErrSlotEmpty
	}
	return append([]byte(nil), v.value...), nil
}

func (s *SlotStorage) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	v := slot{value: append([]byte(nil), value...)}
	if ttl > 0 {
		v.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.slots[key] = v
	s.mu.Unlock()
	return nil
}

func (s *SlotStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
	return nil
}
