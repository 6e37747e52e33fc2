package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

const (
	defaultSlotPrefix = "hms"
	sessionSlotName   = "user"
)

// SessionStore keeps the authenticated user of each client context in a
// single storage slot. The client is identified by the id bound to the
// request context (see domain.WithClientID).
type SessionStore struct {
	slots  ports.SlotStorage
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewSessionStore returns a store writing slots under "<prefix>:<client>:user".
// An empty prefix falls back to "hms"; ttl <= 0 keeps sessions until logout.
func NewSessionStore(slots ports.SlotStorage, prefix string, ttl time.Duration, log zerolog.Logger) *SessionStore {
	if prefix == "" {
		prefix = defaultSlotPrefix
	}
	return &SessionStore{slots: slots, prefix: prefix, ttl: ttl, log: log}
}

// Save overwrites the client's session with identity and role.
func (s *SessionStore) Save(ctx context.Context, identity domain.UserIdentity, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	key, err := s.key(ctx)
	if err != nil {
		return err
	}

	raw, err := domain.MarshalSession(domain.Session{Identity: identity, Role: role})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.slots.Set(ctx, key, raw, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Current returns the client's session. Missing, unreadable and malformed
// slots all report false; nothing is surfaced to the caller.
func (s *SessionStore) Current(ctx context.Context) (domain.Session, bool) {
	key, err := s.key(ctx)
	if err != nil {
		return domain.Session{}, false
	}

	raw, err := s.slots.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrSlotEmpty) {
			s.log.Warn().Err(err).Str("slot", key).Msg("session slot read failed")
		}
		return domain.Session{}, false
	}

	sess, err := domain.UnmarshalSession(raw)
	if err != nil {
		s.log.Debug().Err(err).Str("slot", key).Msg("discarding malformed session")
		return domain.Session{}, false
	}
	return sess, true
}

// Clear removes the client's session. Clearing an absent session succeeds.
func (s *SessionStore) Clear(ctx context.Context) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	if err := s.slots.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(ctx context.Context) (string, error) {
	clientID, ok := domain.ClientIDFromContext(ctx)
	if !ok {
		return "", domain.ErrNoClientContext
	}
	return s.prefix + ":" + clientID + ":" + sessionSlotName, nil
}
