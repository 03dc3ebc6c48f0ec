// Package metrics exposes Prometheus instrumentation for the prober.
// The CLI serves these on an optional /metrics listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProbesTotal counts finished credential probes by outcome
	// ("ok" or "login_failed").
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xtream_probe_probes_total",
		Help: "Credential probes finished, by outcome.",
	}, []string{"outcome"})

	// APIRequestsTotal counts player_api calls by action and outcome.
	// Outcome is "ok" or the failure kind (network, timeout, bad_status,
	// bad_payload).
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xtream_probe_api_requests_total",
		Help: "player_api requests issued, by action and outcome.",
	}, []string{"action", "outcome"})

	// APIRequestSeconds tracks player_api call latency by action.
	APIRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xtream_probe_api_request_seconds",
		Help:    "player_api request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
