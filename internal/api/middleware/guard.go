package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospital-ms/portal/internal/api/metrics"
	"github.com/hospital-ms/portal/internal/core/domain"
	"github.com/hospital-ms/portal/internal/core/service"
)

// SessionKey is the echo context key holding the session of an authorized
// request.
const SessionKey = "session"

// Evaluator decides whether the current client may open a route.
type Evaluator interface {
	Evaluate(ctx context.Context, route domain.RouteKey, path string, opts ...service.GuardOption) service.Decision
}

// Guard protects a section mount. Denied navigations are answered with a
// 302 to the decision's redirect; authorized ones see the session under
// SessionKey.
func Guard(g Evaluator, route domain.RouteKey, opts ...service.GuardOption) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return guard(c, next, g, route, opts)
		}
	}
}

// GuardPath protects a mount whose route is looked up from the request path.
// Paths with no policy entry resolve to RouteUnknown and are always denied.
func GuardPath(g Evaluator, opts ...service.GuardOption) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := domain.RouteFromPath(c.Request().URL.Path)
			return guard(c, next, g, route, opts)
		}
	}
}

func guard(c echo.Context, next echo.HandlerFunc, g Evaluator, route domain.RouteKey, opts []service.GuardOption) error {
	req := c.Request()
	d := g.Evaluate(req.Context(), route, req.URL.Path, opts...)
	metrics.GuardDecisionsTotal.WithLabelValues(d.Route.String(), d.State.String()).Inc()

	if d.State != domain.StateAuthorized {
		return c.Redirect(http.StatusFound, d.Redirect)
	}

	c.Set(SessionKey, d.Session)
	return next(c)
}

// SessionFrom returns the session stored by Guard.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(SessionKey).(domain.Session)
	return sess, ok
}
