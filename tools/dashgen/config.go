package main

import "errors"

// KnownMetrics is the set of metric names exported by dvf-estimator plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"dvf_http_request_duration_seconds": true,
	"dvf_http_requests_total":           true,
	"dvf_http_rate_limited_total":       true,

	// Health metrics.
	"dvf_healthz_up": true,
	"dvf_readyz_up":  true,

	// Valuation metrics.
	"dvf_estimates_total":               true,
	"dvf_estimate_duration_seconds":     true,
	"dvf_comparables_used":              true,
	"dvf_source_fetch_duration_seconds": true,
	"dvf_source_fetch_errors_total":     true,

	// Cache metrics.
	"dvf_cache_requests_total": true,

	// Import metrics.
	"dvf_import_rows_total":                     true,
	"dvf_import_errors_total":                   true,
	"dvf_import_duration_seconds":               true,
	"dvf_import_last_success_timestamp_seconds": true,
	"dvf_corpus_sales":                          true,

	// Lead metrics.
	"dvf_leads_total":                   true,
	"dvf_notification_duration_seconds": true,
	"dvf_notification_failures_total":   true,

	// Recording rules.
	"dvf:http_requests:rate5m":       true,
	"dvf:http_errors:rate5m":         true,
	"dvf:estimates:rate5m":           true,
	"dvf:no_estimates:rate5m":        true,
	"dvf:source_fetch_errors:rate5m": true,
	"dvf:cache_hits:ratio5m":         true,
	"dvf:leads:rate5m":               true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
