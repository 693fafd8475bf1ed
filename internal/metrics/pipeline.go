package metrics

import "github.com/prometheus/client_golang/prometheus"

// Answer pipeline Prometheus metrics.
var (
	AnswerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "answerdex",
			Name:      "answer_requests_total",
			Help:      "Total number of answer pipeline runs",
		},
		[]string{"status"}, // "ok" / "failed"
	)

	AnswerStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "answerdex",
			Name:      "answer_stage_duration_seconds",
			Help:      "Duration of each answer pipeline stage",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	RetrievalSubqueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "answerdex",
			Name:      "retrieval_subqueries_total",
			Help:      "Fan-out retrieval sub-queries by outcome",
		},
		[]string{"status"}, // "success" / "failure"
	)

	ExpansionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "answerdex",
			Name:      "expansion_failures_total",
			Help:      "Query expansion calls that fell back to the original query",
		},
	)

	ClassificationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "answerdex",
			Name:      "link_classification_outcomes_total",
			Help:      "Link classification outcomes by topic (including none)",
		},
		[]string{"topic"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers answer pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnswerRequestsTotal)
	prometheus.MustRegister(AnswerStageDuration)
	prometheus.MustRegister(RetrievalSubqueriesTotal)
	prometheus.MustRegister(ExpansionFailuresTotal)
	prometheus.MustRegister(ClassificationOutcomesTotal)
	pipelineMetricsRegistered = true
}
