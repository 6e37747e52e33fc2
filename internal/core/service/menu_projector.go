package service

import (
	"context"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/policy"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// MenuProjector derives the visible navigation from the policy table.
type MenuProjector struct {
	table    *policy.Table
	sessions ports.SessionSource
}

func NewMenuProjector(table *policy.Table, sessions ports.SessionSource) *MenuProjector {
	return &MenuProjector{table: table, sessions: sessions}
}

// Project returns the entries role may see, in table order. RoleNone gets an
// empty (non-nil) slice.
func (m *MenuProjector) Project(role domain.Role) []domain.MenuEntry {
	out := make([]domain.MenuEntry, 0, len(domain.AllRoutes))
	if !role.Valid() {
		return out
	}
	for _, e := range m.table.Entries() {
		if !e.Allowed.Has(role) {
			continue
		}
		out = append(out, domain.MenuEntry{
			Route:        e.Route,
			Label:        e.Label,
			Icon:         e.Icon,
			AllowedRoles: e.Allowed,
		})
	}
	return out
}

// ProjectSession projects the menu for the session bound to ctx.
func (m *MenuProjector) ProjectSession(ctx context.Context) []domain.MenuEntry {
	sess, ok := m.sessions.Current(ctx)
	if !ok {
		return m.Project(domain.RoleNone)
	}
	return m.Project(sess.Role)
}
