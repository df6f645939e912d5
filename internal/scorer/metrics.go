package scorer

import "github.com/prometheus/client_golang/prometheus"

var (
	initTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askrelay",
			Subsystem: "scorer",
			Name:      "init_total",
			Help:      "Model initialization attempts by result",
		},
		[]string{"result"},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askrelay",
			Subsystem: "scorer",
			Name:      "generations_total",
			Help:      "Generation calls by budget bucket and outcome",
		},
		[]string{"bucket", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "askrelay",
			Subsystem: "scorer",
			Name:      "generation_duration_seconds",
			Help:      "Duration of generation calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"bucket"},
	)

	refusalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "askrelay",
			Subsystem: "scorer",
			Name:      "refusals_total",
			Help:      "Answers replaced by a refusal, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(initTotal, generationsTotal, generationDuration, refusalsTotal)
}
