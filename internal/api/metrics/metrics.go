// Package metrics defines and registers all custom Prometheus metrics for the
// CMS REST API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cmsapi"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "missing_credentials", "invalid_credentials",
//     "misconfigured" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── User directory metrics ────────────────────────────────────────────────────

// UserQueriesTotal counts users endpoint requests.
// Labels:
//   - shape: "search", "enumerate" or "get"
//   - result: "ok", "unauthorized", "not_found", "invalid" or "error"
var UserQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_queries_total",
		Help:      "Total number of user directory queries, by shape and result.",
	},
	[]string{"shape", "result"},
)

// ── Slot metrics ──────────────────────────────────────────────────────────────

// SlotsServedTotal counts slots rendered through the block transform pipeline.
var SlotsServedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slots_served_total",
		Help:      "Total number of slots serialized.",
	},
)

// SerializationDuration measures how long a service takes to build its
// response body.
// Label:
//   - service: "content", "slots", "users"
var SerializationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "serialization_duration_seconds",
		Help:      "Duration of response serialization, by service.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"service"},
)
