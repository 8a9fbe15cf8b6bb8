package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts dispatched document commands by type and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billbook",
		Name:      "document_commands_total",
		Help:      "Document commands dispatched, by command type and result.",
	}, []string{"type", "result"})

	// RecalculationsTotal counts totals-pipeline runs and how many of them wrote back.
	RecalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billbook",
		Name:      "document_recalculations_total",
		Help:      "Totals recomputations, split into runs and write-backs.",
	}, []string{"kind"})

	// ValidationsTotal counts validation runs by resulting status.
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billbook",
		Name:      "document_validations_total",
		Help:      "Document validations, by resulting status.",
	}, []string{"status"})

	// ReferenceCacheTotal counts reference snapshot lookups by hit or miss.
	ReferenceCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billbook",
		Name:      "reference_cache_lookups_total",
		Help:      "Reference snapshot cache lookups, by result.",
	}, []string{"result"})

	// HTTPRequestsTotal counts served requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billbook",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "billbook",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveRecalculations records a store's recompute and write-back counters.
func ObserveRecalculations(runs, writes int) {
	RecalculationsTotal.WithLabelValues("run").Add(float64(runs))
	RecalculationsTotal.WithLabelValues("write").Add(float64(writes))
}

// ObserveCommand records one dispatched command.
func ObserveCommand(commandType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CommandsTotal.WithLabelValues(commandType, result).Inc()
}
