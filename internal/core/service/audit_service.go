package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/ports"
)

type auditService struct {
	repo ports.AccessAuditRepository
	log  zerolog.Logger
}

// AuditProcessor persists access events dequeued by the dispatcher.
type AuditProcessor interface {
	Process(ctx context.Context, event domain.AccessEvent) error
}

// NewAuditService returns an AuditProcessor backed by repo.
func NewAuditService(repo ports.AccessAuditRepository, log zerolog.Logger) AuditProcessor {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AccessEvent) error {
	if err := s.repo.InsertAccessEvent(ctx, &event); err != nil {
		return fmt.Errorf("audit access event: %w", err)
	}

	s.log.Debug().
		Str("client_id", event.ClientID).
		Str("route", event.Route.String()).
		Str("state", event.State.String()).
		Msg("access event stored")
	return nil
}

// NoopAuditor discards every event.
type NoopAuditor struct{}

func (NoopAuditor) Record(domain.AccessEvent) {}
