// Package metrics defines and registers all custom Prometheus metrics for the
// auth service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts per-request Basic-auth verifications at the gate.
// Label:
//   - result: "success", "rejected", or "error" (store failure, not a bad password)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "basic_auth_attempts_total",
		Help:      "Total number of Basic-auth verification attempts, by result.",
	},
	[]string{"result"},
)

// CredentialCacheTotal counts credential cache decisions.
// Label:
//   - result: "hit" (bcrypt skipped) or "miss" (full comparison performed)
var CredentialCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_cache_total",
		Help:      "Total number of credential cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Role administration metrics ───────────────────────────────────────────────

// RoleAssignmentsTotal counts admin role-assignment operations.
// Label:
//   - result: "assigned", "not_found", or "error"
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of role assignment operations, by result.",
	},
	[]string{"result"},
)
