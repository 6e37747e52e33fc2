package service

import (
	"context"
	"sync"
	"time"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

type stubSlots struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newStubSlots() *stubSlots {
	return &stubSlots{values: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (s *stubSlots) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, ports.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *stubSlots) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	s.ttls[key] = ttl
	return nil
}

func (s *stubSlots) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.ttls, key)
	return nil
}

type stubAuditor struct {
	events []domain.AccessEvent
}

func (a *stubAuditor) Record(e domain.AccessEvent) { a.events = append(a.events, e) }

func clientCtx(id string) context.Context {
	return domain.WithClientID(context.Background(), id)
}
