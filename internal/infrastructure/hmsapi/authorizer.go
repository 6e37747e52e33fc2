package hmsapi

import (
	"net/http"

	"github.com/hospital-ms/portal/internal/api/metrics"
	"github.com/hospital-ms/portal/internal/core/ports"
)

// RoleHeader carries the caller's role to the REST API, which re-checks it.
const RoleHeader = "X-User-Role"

// Authorizer decorates every outgoing request with the role of the session
// bound to the request context. The session is read per call, so a login,
// logout or role change applies to the very next request.
type Authorizer struct {
	Base     http.RoundTripper
	Sessions ports.SessionSource
}

// NewAuthorizer wraps base (http.DefaultTransport when nil).
func NewAuthorizer(base http.RoundTripper, sessions ports.SessionSource) *Authorizer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Authorizer{Base: base, Sessions: sessions}
}

// RoundTrip implements http.RoundTripper. The caller's request is never
// modified; a clone carries the header.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	label := "none"
	if sess, ok := a.Sessions.Current(req.Context()); ok {
		out.Header.Set(RoleHeader, sess.Role.String())
		label = sess.Role.String()
	} else {
		out.Header.Del(RoleHeader)
	}
	metrics.APIRequestsTotal.WithLabelValues(label).Inc()

	return a.Base.RoundTrip(out)
}
