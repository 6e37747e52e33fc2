package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
)

func newTestStore() (*SessionStore, *stubSlots) {
	slots := newStubSlots()
	return NewSessionStore(slots, "test", time.Hour, zerolog.Nop()), slots
}

func TestSessionStore_SaveThenCurrent_RoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := clientCtx("c1")

	for _, role := range domain.AllRoles {
		identity := domain.UserIdentity{ID: "7", Name: "Dr. Grey", Email: "grey@example.com"}
		if err := store.Save(ctx, identity, role); err != nil {
			t.Fatalf("Save(%s): %v", role, err)
		}
		sess, ok := store.Current(ctx)
		if !ok {
			t.Fatalf("expected session after Save(%s)", role)
		}
		if sess.Role != role {
			t.Fatalf("expected role %s, got %s", role, sess.Role)
		}
		if sess.Identity != identity {
			t.Fatalf("unexpected identity: %+v", sess.Identity)
		}
	}
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	store, slots := newTestStore()
	ctx := clientCtx("c1")

	_ = store.Save(ctx, domain.UserIdentity{Name: "first", Email: "first@example.com"}, domain.RoleAdmin)
	_ = store.Save(ctx, domain.UserIdentity{Name: "second"}, domain.RolePatient)

	sess, ok := store.Current(ctx)
	if !ok || sess.Role != domain.RolePatient || sess.Identity.Name != "second" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Identity.Email != "" {
		t.Fatalf("expected full overwrite, email leaked from previous session: %q", sess.Identity.Email)
	}
	if len(slots.values) != 1 {
		t.Fatalf("expected a single slot, got %d", len(slots.values))
	}
	if slots.ttls["test:c1:user"] != time.Hour {
		t.Fatalf("expected ttl to be passed to storage")
	}
}

func TestSessionStore_CurrentEmpty(t *testing.T) {
	store, _ := newTestStore()
	if _, ok := store.Current(clientCtx("nobody")); ok {
		t.Fatalf("expected no session")
	}
}

func TestSessionStore_CurrentMalformed(t *testing.T) {
	store, slots := newTestStore()
	ctx := clientCtx("c1")

	cases := []string{
		`not-json`,
		`{"name":"alice"}`,
		`{"name":"alice","role":"NURSE"}`,
		`{"name":"alice","role":"admin"}`,
		`{"name":"alice","role":42}`,
		``,
	}
	for _, raw := range cases {
		slots.values["test:c1:user"] = []byte(raw)
		if sess, ok := store.Current(ctx); ok {
			t.Fatalf("record %q: expected none, got %+v", raw, sess)
		}
	}
}

func TestSessionStore_CurrentStorageFailure(t *testing.T) {
	store, slots := newTestStore()
	ctx := clientCtx("c1")
	_ = store.Save(ctx, domain.UserIdentity{Name: "a"}, domain.RoleAdmin)

	slots.getErr = errors.New("connection refused")
	if _, ok := store.Current(ctx); ok {
		t.Fatalf("expected none on storage failure")
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := clientCtx("c1")
	_ = store.Save(ctx, domain.UserIdentity{Name: "a"}, domain.RoleDoctor)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("first Clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if _, ok := store.Current(ctx); ok {
		t.Fatalf("expected no session after Clear")
	}
}

func TestSessionStore_ClientsAreIsolated(t *testing.T) {
	store, _ := newTestStore()
	_ = store.Save(clientCtx("a"), domain.UserIdentity{Name: "a"}, domain.RoleAdmin)

	if _, ok := store.Current(clientCtx("b")); ok {
		t.Fatalf("client b must not see client a's session")
	}
	_ = store.Clear(clientCtx("b"))
	if _, ok := store.Current(clientCtx("a")); !ok {
		t.Fatalf("clearing client b removed client a's session")
	}
}

func TestSessionStore_Rejections(t *testing.T) {
	store, _ := newTestStore()

	if err := store.Save(clientCtx("c1"), domain.UserIdentity{Name: "a"}, domain.RoleNone); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if err := store.Save(context.Background(), domain.UserIdentity{Name: "a"}, domain.RoleAdmin); !errors.Is(err, domain.ErrNoClientContext) {
		t.Fatalf("expected ErrNoClientContext, got %v", err)
	}
	if _, ok := store.Current(context.Background()); ok {
		t.Fatalf("expected none without client context")
	}
}
