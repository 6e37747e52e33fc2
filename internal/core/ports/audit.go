package ports

import (
	"context"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// AccessAuditRepository stores redirected navigation attempts.
type AccessAuditRepository interface {
	InsertAccessEvent(ctx context.Context, event *domain.AccessEvent) error
}

// AccessAuditor accepts access events without blocking the request path.
type AccessAuditor interface {
	Record(event domain.AccessEvent)
}
