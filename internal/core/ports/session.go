package ports

import (
	"context"
	"errors"
	"time"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// ErrSlotEmpty is returned by SlotStorage.Get when nothing is stored under key.
var ErrSlotEmpty = errors.New("slot empty")

// SlotStorage is a key/value store holding one opaque value per key. Set and
// Delete are single atomic operations on one key.
type SlotStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites key. A ttl <= 0 means the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// SessionSource is the single read accessor for the current session of the
// client bound to ctx.
type SessionSource interface {
	Current(ctx context.Context) (domain.Session, bool)
}

// SessionManager is the full session lifecycle used by the login and logout
// flows.
type SessionManager interface {
	SessionSource
	Save(ctx context.Context, identity domain.UserIdentity, role domain.Role) error
	Clear(ctx context.Context) error
}
