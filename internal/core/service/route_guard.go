package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/policy"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// Decision is the result of one navigation attempt.
type Decision struct {
	State    domain.GuardState
	Route    domain.RouteKey
	Session  domain.Session // zero unless a session was found
	Redirect string         // empty when State is StateAuthorized
}

// GuardOption tunes a single mount of the guard.
type GuardOption func(*guardMount)

type guardMount struct {
	required domain.Role
}

// RequireRole adds a stricter single-role check on top of the table.
func RequireRole(r domain.Role) GuardOption {
	return func(m *guardMount) { m.required = r }
}

// RouteGuard decides, on every navigation, whether the current session may
// see a section. It holds no per-client state between calls.
type RouteGuard struct {
	table    *policy.Table
	sessions ports.SessionSource
	auditor  ports.AccessAuditor
	log      zerolog.Logger
	now      func() time.Time
}

// NewRouteGuard wires the guard. A nil auditor disables auditing.
func NewRouteGuard(table *policy.Table, sessions ports.SessionSource, auditor ports.AccessAuditor, log zerolog.Logger) *RouteGuard {
	return &RouteGuard{
		table:    table,
		sessions: sessions,
		auditor:  auditor,
		log:      log,
		now:      time.Now,
	}
}

// Evaluate runs the guard for route. path is the requested URL path and is
// only used for auditing.
func (g *RouteGuard) Evaluate(ctx context.Context, route domain.RouteKey, path string, opts ...GuardOption) Decision {
	var mount guardMount
	for _, o := range opts {
		o(&mount)
	}

	sess, ok := g.sessions.Current(ctx)
	if !ok {
		d := Decision{State: domain.StateUnauthenticated, Route: route, Redirect: domain.PathLogin}
		g.record(ctx, d, path)
		return d
	}

	d := Decision{State: domain.StateAuthorized, Route: route, Session: sess}
	switch {
	case mount.required != domain.RoleNone && sess.Role != mount.required:
		d.State, d.Redirect = domain.StateUnauthorized, domain.PathDashboard
	case !g.table.Allows(route, sess.Role):
		d.State, d.Redirect = domain.StateUnauthorized, domain.PathDashboard
	}

	if d.State != domain.StateAuthorized {
		g.record(ctx, d, path)
	}
	return d
}

func (g *RouteGuard) record(ctx context.Context, d Decision, path string) {
	clientID, _ := domain.ClientIDFromContext(ctx)

	g.log.Info().
		Str("client_id", clientID).
		Str("path", path).
		Str("route", d.Route.String()).
		Str("role", d.Session.Role.String()).
		Str("state", d.State.String()).
		Str("redirect", d.Redirect).
		Msg("navigation redirected")

	if g.auditor == nil {
		return
	}
	g.auditor.Record(domain.AccessEvent{
		ClientID:  clientID,
		UserName:  d.Session.Identity.Name,
		Role:      d.Session.Role,
		Path:      path,
		Route:     d.Route,
		State:     d.State,
		Timestamp: g.now().UTC(),
	})
}
