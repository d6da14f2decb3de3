// Package metrics holds the gateway's prometheus collectors. Init registers
// them once at startup; the admin server exposes them via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RoutingDecisionsTotal counts routing decisions by reason
	// (sticky-reuse, least-connections, no-healthy-backend).
	RoutingDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "examgateway_routing_decisions_total",
			Help: "Total number of routing decisions by reason",
		},
		[]string{"reason"},
	)

	// ForwardDuration observes forward latency per backend.
	ForwardDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "examgateway_forward_duration_seconds",
			Help:    "Latency of requests forwarded to backends",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// BackendHealthy is 1 when the backend is classified healthy, 0 otherwise.
	BackendHealthy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "examgateway_backend_healthy",
			Help: "Whether the backend is currently classified healthy",
		},
		[]string{"backend"},
	)
)

func Init() {
	prometheus.MustRegister(
		RoutingDecisionsTotal,
		ForwardDuration,
		BackendHealthy,
	)
}
