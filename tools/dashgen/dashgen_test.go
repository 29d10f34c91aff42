package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/dvf-estimator/tools/dashgen/dashboards"
	"github.com/donaldgifford/dvf-estimator/tools/dashgen/panels"
	"github.com/donaldgifford/dvf-estimator/tools/dashgen/rules"
	"github.com/donaldgifford/dvf-estimator/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "dvf-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "DVF Estimator Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 5)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 20, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "dvf-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "dvf-recording", group.Name)
	assert.Equal(t, "1m", group.Interval)
	assert.Equal(t, rules.PartOf, cr.Metadata.Labels["app.kubernetes.io/part-of"])
	assert.Equal(t, rules.RulesSelector, cr.Metadata.Labels["prometheus"])
	require.Len(t, group.Rules, 7)

	for _, rule := range group.Rules {
		assert.True(t, KnownMetrics[rule.Record], "recording rule %s missing from KnownMetrics", rule.Record)
		assert.NotEmpty(t, rule.Expr)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "dvf-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	require.Len(t, group.Rules, 8)

	expectedAlerts := []string{
		"DvfDown",
		"DvfReadinessDown",
		"DvfHighErrorRate",
		"DvfSourceFetchErrors",
		"DvfNoEstimateRateHigh",
		"DvfImportStale",
		"DvfImportFailed",
		"DvfNotificationFailures",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
		assert.Contains(t, []string{rules.SeverityCritical, rules.SeverityWarning}, rule.Labels["severity"])
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	expr := panels.Quantile(0.95, "dvf_estimate_duration_seconds", "5m")
	assert.Equal(t,
		`histogram_quantile(0.95, sum(rate(dvf_estimate_duration_seconds_bucket{job="dvf-estimator"}[5m])) by (le))`,
		expr,
	)

	var r validate.Result
	validate.Expr("p95 estimate latency", expr, KnownMetrics, &r)
	assert.True(t, r.Ok(), "validation errors: %v", r.Errors)
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "known counter", expr: `rate(dvf_leads_total[5m])`},
		{name: "histogram bucket", expr: `histogram_quantile(0.9, sum(rate(dvf_estimate_duration_seconds_bucket[5m])) by (le))`},
		{name: "recording rule", expr: `dvf:leads:rate5m * 60`},
		{name: "unknown metric", expr: `rate(dvf_listings_total[5m])`, wantErr: true},
		{name: "invalid promql", expr: `sum(rate(dvf_leads_total[5m])`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var r validate.Result
			validate.Expr("test", tt.expr, KnownMetrics, &r)
			assert.Equal(t, tt.wantErr, !r.Ok(), "errors: %v", r.Errors)
		})
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir

	require.NoError(t, run(cfg, false))

	for _, p := range []string{dashboardPath, recordingPath, alertsPath} {
		data, err := os.ReadFile(filepath.Join(dir, p))
		require.NoError(t, err, p)
		assert.NotEmpty(t, data)
	}

	alerts, err := os.ReadFile(filepath.Join(dir, alertsPath))
	require.NoError(t, err)
	assert.Contains(t, string(alerts), generatedHeader)
	assert.Contains(t, string(alerts), "DvfImportStale")
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir

	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
