package rules

// AlertRules returns the operational alerts for dvf-estimator.
func AlertRules() PrometheusRule {
	return newPrometheusRule("dvf-alerts", RuleGroup{
		Name: "dvf-alerts",
		Rules: []Rule{
			alert("DvfDown",
				`absent(up{job="dvf-estimator"})`, "2m", SeverityCritical,
				"DVF Estimator is down",
				"The dvf-estimator job has been absent for more than 2 minutes."),
			alert("DvfReadinessDown",
				`dvf_readyz_up == 0`, "2m", SeverityCritical,
				"DVF Estimator readiness check is failing",
				"The sales store has been unreachable for more than 2 minutes."),
			alert("DvfHighErrorRate",
				`dvf:http_errors:rate5m / dvf:http_requests:rate5m > 0.05`, "5m", SeverityWarning,
				"High HTTP error rate on DVF Estimator",
				"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
			alert("DvfSourceFetchErrors",
				`dvf:source_fetch_errors:rate5m > 0`, "5m", SeverityWarning,
				"Corpus fetches are failing",
				"Candidate sale fetches have been failing or timing out for more than 5 minutes; estimates return 503."),
			alert("DvfNoEstimateRateHigh",
				`dvf:no_estimates:rate5m / dvf:estimates:rate5m > 0.5`, "30m", SeverityWarning,
				"Most estimate requests return no estimate",
				"More than half of the estimate requests over 30 minutes found too few comparables. Check the corpus import."),
			alert("DvfImportStale",
				`time() - max(dvf_import_last_success_timestamp_seconds) > 35 * 86400`, "1h", SeverityWarning,
				"Corpus has not been imported for 35 days",
				"No successful DVF import has completed in the last 35 days."),
			alert("DvfImportFailed",
				`increase(dvf_import_errors_total[1h]) > 0`, "0m", SeverityWarning,
				"Corpus import failed",
				"A DVF import failed in the last hour. The previous corpus is still served."),
			alert("DvfNotificationFailures",
				`increase(dvf_notification_failures_total[5m]) > 0`, "1m", SeverityWarning,
				"Lead delivery failures detected",
				"One or more seller leads failed to reach Discord or Kafka."),
		},
	})
}
