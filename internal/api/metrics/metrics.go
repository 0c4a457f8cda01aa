// Package metrics defines all custom Prometheus metrics for the auth API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginsTotal counts login attempts that reached the session service.
// Label:
//   - result: "success", "invalid_credentials", "inactive", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-rotation attempts.
// Label:
//   - result: "success", "session_not_found", or "error"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token rotations, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts forgot-password operations by stage.
// Labels:
//   - stage: "init", "verify", or "confirm"
//   - result: "success" or "error" (an unknown email at init counts as success)
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of forgot-password operations, by stage and result.",
	},
	[]string{"stage", "result"},
)

// BruteForceBlocksTotal counts login attempts rejected by the throttle.
var BruteForceBlocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "brute_force_blocks_total",
		Help:      "Total number of login attempts blocked by the brute force gate.",
	},
)

// MailDispatchTotal counts notification mail outcomes.
// Label:
//   - result: "sent", "error", or "dropped" (queue full)
var MailDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dispatch_total",
		Help:      "Total number of notification mails, by delivery result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of mails waiting in the dispatcher queue.
var MailQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of notification mails pending dispatch.",
	},
)
