// Package metrics defines Prometheus metrics for the DVF estimator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dvf"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_rate_limited_total",
		Help:      "Total number of requests rejected by the per-client rate limiter.",
	})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Estimate outcomes.
const (
	OutcomeEstimated  = "estimated"
	OutcomeNoEstimate = "no_estimate"
	OutcomeError      = "error"
)

// Valuation metrics.
var (
	EstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimates_total",
		Help:      "Total number of estimate requests by outcome and rejection reason.",
	}, []string{"outcome", "reason"})

	EstimateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "estimate_duration_seconds",
		Help:      "Duration of estimate computations including the corpus fetch.",
		Buckets:   prometheus.DefBuckets,
	})

	ComparablesUsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "comparables_used",
		Help:      "Number of comparable sales kept for successful estimates.",
		Buckets:   prometheus.ExponentialBuckets(3, 2, 8), // 3 .. 384
	})

	SourceFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_fetch_duration_seconds",
		Help:      "Duration of candidate sale fetches from the corpus.",
		Buckets:   prometheus.DefBuckets,
	})

	SourceFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_fetch_errors_total",
		Help:      "Total number of failed or timed out candidate sale fetches.",
	})
)

// Cache metrics.
var (
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Total number of candidate cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)

// Import metrics.
var (
	ImportRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Total number of sales loaded by corpus imports.",
	})

	ImportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_errors_total",
		Help:      "Total number of failed corpus imports.",
	})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of corpus imports in seconds.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s .. ~34m
	})

	ImportLastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful corpus import.",
	})

	CorpusSales = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "corpus_sales",
		Help:      "Number of sales currently in the corpus.",
	})
)

// Lead metrics.
var (
	LeadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_total",
		Help:      "Total number of contact leads submitted with an estimate.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of lead webhook deliveries.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of lead notification failures by notifier.",
	}, []string{"notifier"})
)
