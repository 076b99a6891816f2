package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkpulse"

// Failure reasons of a dropped click event
const (
	ReasonInvalidJSON   = "invalid_json"
	ReasonInvalidSchema = "invalid_schema"
	ReasonHandlerError  = "handler_error"
)

// Aggregation run labels
const (
	JobHourly = "hourly"
	JobDaily  = "daily"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metrics holds every collector of the pipeline
type Metrics struct {
	EventsReceived     prometheus.Counter
	EventsProcessed    prometheus.Counter
	EventsFailed       *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
	ConsumerRunning    prometheus.Gauge

	BatchSize           prometheus.Histogram
	BatchInsertDuration prometheus.Histogram
	BatchInsertFailures prometheus.Counter
	PendingClicks       prometheus.Gauge

	AggregationRuns     *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	RowsAggregated      *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg builds unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "click_events_received_total",
			Help:      "Click events received from the broker.",
		}),
		EventsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "click_events_processed_total",
			Help:      "Valid click events dispatched to every handler.",
		}),
		EventsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "click_events_failed_total",
			Help:      "Click events dropped or failed, by reason.",
		}, []string{"reason"}),
		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "click_processing_duration_seconds",
			Help:      "Time spent processing one click event.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		ConsumerRunning: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "consumer_running",
			Help:      "1 while the click consumer loop is running.",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Rows per bulk insert.",
			Buckets:   []float64{1, 10, 25, 50, 100, 250, 500, 1000},
		}),
		BatchInsertDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_insert_duration_seconds",
			Help:      "Duration of bulk inserts into the raw click table.",
			Buckets:   prometheus.DefBuckets,
		}),
		BatchInsertFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_insert_failures_total",
			Help:      "Bulk inserts that failed and were re-buffered.",
		}),
		PendingClicks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_clicks",
			Help:      "Clicks buffered in memory awaiting insert.",
		}),
		AggregationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_runs_total",
			Help:      "Aggregation job runs, by job type and status.",
		}, []string{"type", "status"}),
		AggregationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of aggregation job runs.",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"type"}),
		RowsAggregated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_aggregated_total",
			Help:      "Rollup rows upserted, by job type.",
		}, []string{"type"}),
	}
}

// NewNop returns collectors that are not registered anywhere
func NewNop() *Metrics {
	return New(nil)
}
