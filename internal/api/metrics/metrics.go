// Package metrics defines the custom Prometheus metrics of the publisher
// console. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics are registered with the default registry on import through
// promauto; /metrics exposes them next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mobilepub/publisher-console/internal/core/domain"
)

const namespace = "console"

// Login methods.
const (
	MethodGoogle      = "google"
	MethodDemo        = "demo"
	MethodCredentials = "credentials"
)

// Login outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - method: "google", "demo" or "credentials"
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// LoginsThrottledTotal counts demo logins rejected by the rate limiter.
var LoginsThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_throttled_total",
		Help:      "Total number of login requests rejected by the rate limiter.",
	},
)

// LogoutsTotal counts completed logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// RefreshesTotal counts refresh attempts.
// Label:
//   - outcome: "success" or "failure"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of session refreshes against the platform, by outcome.",
	},
	[]string{"outcome"},
)

// SessionAuthenticated is 1 while a user is logged in, 0 otherwise.
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "Whether the console currently holds an authenticated session.",
	},
)

// SessionTransitionsTotal counts observed session snapshots by phase.
// Label:
//   - phase: "unresolved", "authenticated" or "anonymous"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state changes, by resulting phase.",
	},
	[]string{"phase"},
)

// ObserveSession is a session subscriber that keeps the session gauges current.
func ObserveSession(s domain.Session) {
	SessionTransitionsTotal.WithLabelValues(string(s.Phase())).Inc()
	if s.IsAuthenticated {
		SessionAuthenticated.Set(1)
		return
	}
	SessionAuthenticated.Set(0)
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
