// Package metrics defines and registers all custom Prometheus metrics for the
// hospital portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; /metrics exposes them alongside the echo HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Access gate ───────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Labels:
//   - route: section name (e.g. "patients"), "unknown" for unmapped paths
//   - state: "authorized", "unauthorized" or "unauthenticated"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by route and resulting state.",
	},
	[]string{"route", "state"},
)

// LoginTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Upstream API ──────────────────────────────────────────────────────────────

// APIRequestsTotal counts outgoing calls to the hospital REST API.
// Label:
//   - role_header: the X-User-Role value sent, or "none" when omitted
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of outgoing API requests, by attached role header.",
	},
	[]string{"role_header"},
)

// ── Audit ─────────────────────────────────────────────────────────────────────

// AuditDroppedTotal counts access events dropped because a worker queue was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of access events dropped before reaching storage.",
	},
)

// AuditQueueDepth tracks pending access events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of access events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
