package handler

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

type stubAuthenticator struct {
	loginFn    func(ctx context.Context, email, password string) (domain.UserIdentity, domain.Role, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (domain.UserIdentity, domain.Role, error)
}

func (s *stubAuthenticator) Login(ctx context.Context, email, password string) (domain.UserIdentity, domain.Role, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthenticator) Register(ctx context.Context, in ports.RegisterInput) (domain.UserIdentity, domain.Role, error) {
	return s.registerFn(ctx, in)
}

// stubSessions holds a single session regardless of client id.
type stubSessions struct {
	mu      sync.Mutex
	sess    *domain.Session
	cleared int
}

func (s *stubSessions) Current(context.Context) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return domain.Session{}, false
	}
	return *s.sess, true
}

func (s *stubSessions) Save(_ context.Context, identity domain.UserIdentity, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &domain.Session{Identity: identity, Role: role}
	return nil
}

func (s *stubSessions) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	s.cleared++
	return nil
}

type stubFetcher struct {
	data  map[string]string
	err   error
	paths []string
}

func (f *stubFetcher) Fetch(_ context.Context, path string) (json.RawMessage, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.data[path]), nil
}
