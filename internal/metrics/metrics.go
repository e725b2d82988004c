package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gamesearch"

// Outcome labels used by the lookup and candidate counters.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
	OutcomeFault   = "fault"
)

// Metrics holds the collectors recorded by the search pipeline.
type Metrics struct {
	Lookups             *prometheus.CounterVec
	Candidates          *prometheus.CounterVec
	SourceResults       *prometheus.CounterVec
	AggregationDuration prometheus.Histogram
}

// New creates the collectors and registers them on reg.
// A nil reg creates unregistered collectors, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Candidate lookups by outcome.",
		}, []string{"outcome"}),
		Candidates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Aggregated candidates by outcome.",
		}, []string{"outcome"}),
		SourceResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_results_total",
			Help:      "Source query results by source and status.",
		}, []string{"source", "status"}),
		AggregationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Wall-clock time to aggregate every candidate of one query.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Discard returns collectors that are not registered anywhere.
func Discard() *Metrics {
	return New(nil)
}
