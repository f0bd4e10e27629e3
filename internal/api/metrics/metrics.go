// Package metrics defines and registers all custom Prometheus metrics for
// the portal API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Notification fan-out metrics ──────────────────────────────────────────────

// NotificationsCreatedTotal counts notification rows created by the notifier.
// Label:
//   - verb: the notification verb ("assigned you a new task", ...)
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications created, by verb.",
	},
	[]string{"verb"},
)

// MentionLookupsTotal counts mention resolution outcomes.
// Label:
//   - result: "resolved", "miss", "ambiguous", "self" or "inactive"
var MentionLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mention_lookups_total",
		Help:      "Total number of mention candidate lookups, by result.",
	},
	[]string{"result"},
)

// LivePushesTotal counts live-channel push attempts.
// Label:
//   - result: "ok", "error" or "dropped" (dispatcher queue full)
var LivePushesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_pushes_total",
		Help:      "Total number of live-channel push attempts, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "LOW", "NORMAL", "HIGH" or "URGENT"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// NotifierDuration measures how long a single notifier hook takes end-to-end.
// Label:
//   - event: "task_saved" or "comment_saved"
var NotifierDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notifier_duration_seconds",
		Help:      "Duration of notifier event handling, from hook entry to return.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"event"},
)
