package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
)

type stubAuditRepo struct {
	events []domain.AccessEvent
	err    error
}

func (r *stubAuditRepo) InsertAccessEvent(_ context.Context, e *domain.AccessEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	ev := domain.AccessEvent{ClientID: "c1", Route: domain.RouteReports, State: domain.StateUnauthorized}
	if err := svc.Process(context.Background(), ev); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].ClientID != "c1" {
		t.Fatalf("unexpected stored events: %+v", repo.events)
	}
}

func TestAuditService_ProcessWrapsRepoError(t *testing.T) {
	boom := errors.New("mongo down")
	svc := NewAuditService(&stubAuditRepo{err: boom}, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.AccessEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
