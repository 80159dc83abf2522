// Package metrics defines and registers all custom Prometheus metrics for
// the agencydesk API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agencydesk"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RecordWritesTotal counts successful create/update/delete operations.
// Labels:
//   - collection: "tasks", "clients", "hosting", "users", "groups"
//   - operation:  "create", "update", "delete"; embedded client writes use
//     the "task_*" and "login_*" variants
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of successful record mutations, by collection and operation.",
	},
	[]string{"collection", "operation"},
)

// RemindersSentTotal counts renewal reminder emails that were sent.
// Label:
//   - status: the derived hosting status that triggered the reminder
//     ("expiring_soon" or "expired")
var RemindersSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of hosting renewal reminders sent, by expiry status.",
	},
	[]string{"status"},
)

// RemindersFailedTotal counts reminder emails that failed to send.
// Failures are logged but never retried.
var RemindersFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_failed_total",
		Help:      "Total number of hosting renewal reminders that failed to send.",
	},
)
