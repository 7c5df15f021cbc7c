// Package metrics defines and registers all custom Prometheus metrics for
// the locker system API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time via promauto;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "locker"

// LoginsTotal counts login attempts.
// Labels:
//   - method: "password" or "rfid"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// BorrowsCreatedTotal counts successful borrow transactions.
var BorrowsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrows_created_total",
		Help:      "Total number of successful borrow transactions.",
	},
)

// ReturnsTotal counts successful return transactions.
var ReturnsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "returns_total",
		Help:      "Total number of successful return transactions.",
	},
)

// BorrowConflictsTotal counts borrow attempts rejected before commit.
// Label:
//   - reason: "item_unavailable", "locker_unavailable", "not_found", "other"
var BorrowConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "borrow_conflicts_total",
		Help:      "Total number of rejected borrow attempts, by reason.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts audit entries dropped because a worker channel
// was full. Recording is best-effort; drops are visible here, not to callers.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit entries dropped due to a full worker channel.",
	},
)
