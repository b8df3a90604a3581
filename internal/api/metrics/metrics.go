// Package metrics defines and registers the custom Prometheus metrics for
// the property insights services. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property_insights"

// PropertiesCreatedTotal counts properties persisted through the listing API.
var PropertiesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of properties created via POST /api/properties.",
	},
)

// DataStoreErrorsTotal counts request failures by taxonomy class.
// Label:
//   - kind: "config_missing", "retrieval_failed", "connection_unavailable",
//     "query_failed", or "internal"
var DataStoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "datastore_errors_total",
		Help:      "Total number of requests that failed on the data path, by error class.",
	},
	[]string{"kind"},
)

// AnalyticsNoDataTotal counts summary requests served while the relation
// was empty.
var AnalyticsNoDataTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_no_data_total",
		Help:      "Total number of analytics summary requests answered with the no-data condition.",
	},
)
