package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EstimatesByOutcome returns a timeseries panel showing estimates per
// minute split by outcome.
func EstimatesByOutcome() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Estimates / min").
		Description("Estimate requests per minute by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (outcome) (rate(dvf_estimates_total{job="`+Job+`"}[5m])) * 60`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NoEstimateShare returns a timeseries panel showing the share of requests
// that produced no estimate.
func NoEstimateShare() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("No Estimate %").
		Description("Requests answered without an estimate, by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (reason) (rate(dvf_estimates_total{job="`+Job+`",outcome="no_estimate"}[5m])) / ignoring(reason) group_left dvf:estimates:rate5m * 100`,
			"{{reason}}", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(25, 50)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// EstimateLatency returns a timeseries panel showing p95 estimate and
// corpus fetch durations.
func EstimateLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Estimate Latency (p95)").
		Description("95th percentile estimate duration and the corpus fetch inside it").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			Quantile(0.95, "dvf_estimate_duration_seconds", "5m"),
			"estimate", "A",
		)).
		WithTarget(PromQuery(
			Quantile(0.95, "dvf_source_fetch_duration_seconds", "5m"),
			"fetch", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ComparablesMedian returns a timeseries panel showing the median number of
// comparables behind successful estimates.
func ComparablesMedian() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Comparables (median)").
		Description("Median comparable sales kept per estimate").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			Quantile(0.50, "dvf_comparables_used", "1h"),
			"p50", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsRedGreen(5)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CacheHitRatio returns a timeseries panel showing the candidate cache hit
// ratio and source fetch errors.
func CacheHitRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Hit % / Fetch Errors").
		Description("Candidate cache hit ratio and failed corpus fetches per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`dvf:cache_hits:ratio5m * 100`, "hit %", "A")).
		WithTarget(PromQuery(`dvf:source_fetch_errors:rate5m * 60`, "fetch errors/min", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
