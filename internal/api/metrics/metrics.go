// Package metrics defines and registers all custom Prometheus metrics for
// orderdesk. It is the single source of truth for metric names, labels, and
// help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "orderdesk"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "ok", "invalid", "inactive", "pending", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// OrdersSubmittedTotal counts successfully submitted orders.
var OrdersSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of orders submitted.",
	},
)

// SheetRequestsTotal counts calls against the remote spreadsheet API.
// Labels:
//   - op: "values", "row", "append", "update", "delete", "create", "ping"
//   - outcome: "ok" or "error"
var SheetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sheet_requests_total",
		Help:      "Total number of remote spreadsheet API calls, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// SnapshotCacheTotal counts table snapshot cache lookups.
// Label:
//   - result: "hit" or "miss"
var SnapshotCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_total",
		Help:      "Total number of table snapshot cache lookups, by result.",
	},
	[]string{"result"},
)

// AuditAppendFailuresTotal counts audit entries lost to append failures.
// Audit recording is best-effort, so every loss is visible here rather than
// in any request outcome.
var AuditAppendFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_append_failures_total",
		Help:      "Total number of audit entries that could not be appended.",
	},
)
