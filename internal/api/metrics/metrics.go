// Package metrics defines and registers all custom Prometheus metrics for
// authgate. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authgate"

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

// VerifyRequestsTotal counts forward-auth probe decisions. This is the hot
// path: the reverse proxy calls /verify on every proxied request.
// Label:
//   - result: "allowed" or "denied"
var VerifyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verify_requests_total",
		Help:      "Total number of forward-auth probe decisions, labelled by result.",
	},
	[]string{"result"},
)

// SessionsCreatedTotal counts sessions issued on successful login.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions issued.",
	},
)

// SessionsEvictedTotal counts removed sessions.
// Label:
//   - reason: "expired" (lazy eviction) or "logout"
var SessionsEvictedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_evicted_total",
		Help:      "Total number of sessions removed, labelled by reason.",
	},
	[]string{"reason"},
)

// StoreWriteDuration measures how long a whole-document durable write takes.
// Label:
//   - store: "users" or "sessions"
var StoreWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_write_duration_seconds",
		Help:      "Duration of whole-document store writes.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"store"},
)

// StoreWriteErrors counts failed durable writes. A non-zero rate means the
// in-memory and persisted state may have diverged.
// Label:
//   - store: "users" or "sessions"
var StoreWriteErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_write_errors_total",
		Help:      "Total number of failed whole-document store writes.",
	},
	[]string{"store"},
)
