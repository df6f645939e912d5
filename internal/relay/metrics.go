package relay

import "github.com/prometheus/client_golang/prometheus"

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askrelay",
			Subsystem: "relay",
			Name:      "upstream_requests_total",
			Help:      "Upstream calls by status class (error for transport failures)",
		},
		[]string{"status"},
	)

	upstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "askrelay",
			Subsystem: "relay",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream round trips in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal, upstreamDuration)
}
