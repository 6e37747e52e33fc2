package domain

import (
	"context"
	"encoding/json"
)

// Session is the authenticated user of one client context.
type Session struct {
	Identity UserIdentity
	Role     Role
}

// sessionRecord is the persisted layout of a session slot.
type sessionRecord struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// MarshalSession serialises s into the slot record format.
func MarshalSession(s Session) ([]byte, error) {
	return json.Marshal(sessionRecord{
		ID:    s.Identity.ID,
		Name:  s.Identity.Name,
		Email: s.Identity.Email,
		Role:  s.Role.String(),
	})
}

// UnmarshalSession parses a slot record. A record that is not JSON, lacks a
// role, or names a role outside the closed set is ErrCorruptSession.
func UnmarshalSession(b []byte) (Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return Session{}, ErrCorruptSession
	}
	role := ParseRole(rec.Role)
	if !role.Valid() {
		return Session{}, ErrCorruptSession
	}
	return Session{
		Identity: UserIdentity{ID: rec.ID, Name: rec.Name, Email: rec.Email},
		Role:     role,
	}, nil
}

type ctxKey string

const ctxKeyClientID ctxKey = "client_id"

// WithClientID binds the client context identifier to ctx.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ctxKeyClientID, clientID)
}

// ClientIDFromContext returns the client context identifier bound to ctx.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyClientID).(string)
	return id, ok && id != ""
}
