package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property_insights"

// targetHealthy reports the current health of each backend target (1 or 0).
var targetHealthy = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "target_healthy",
		Help:      "Whether the backend target is currently considered healthy (1) or not (0).",
	},
	[]string{"target"},
)

// probesTotal counts health probes by target and result ("ok"/"fail").
var probesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "health_probes_total",
		Help:      "Total number of health probes sent, by target and result.",
	},
	[]string{"target", "result"},
)

// unmatchedRequestsTotal counts requests answered with the router's own 404.
var unmatchedRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "unmatched_requests_total",
		Help:      "Total number of requests that matched no routing rule.",
	},
)
