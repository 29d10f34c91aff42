package rules

// RecordingRules returns the pre-computed rates read by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("dvf-recording-rules", RuleGroup{
		Name:     "dvf-recording",
		Interval: "1m",
		Rules: []Rule{
			record("dvf:http_requests:rate5m",
				`sum(rate(dvf_http_requests_total[5m]))`),
			record("dvf:http_errors:rate5m",
				`sum(rate(dvf_http_requests_total{status=~"5.."}[5m]))`),
			record("dvf:estimates:rate5m",
				`sum(rate(dvf_estimates_total[5m]))`),
			record("dvf:no_estimates:rate5m",
				`sum(rate(dvf_estimates_total{outcome="no_estimate"}[5m]))`),
			record("dvf:source_fetch_errors:rate5m",
				`sum(rate(dvf_source_fetch_errors_total[5m]))`),
			record("dvf:cache_hits:ratio5m",
				`sum(rate(dvf_cache_requests_total{result="hit"}[5m])) / sum(rate(dvf_cache_requests_total[5m]))`),
			record("dvf:leads:rate5m",
				`sum(rate(dvf_leads_total[5m]))`),
		},
	})
}
