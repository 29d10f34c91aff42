package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastImport returns a stat panel showing time since the last successful
// corpus import.
func LastImport() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Import").
		Description("Time since the last successful corpus import").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - max(dvf_import_last_success_timestamp_seconds{job="`+Job+`"})`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(8*86400, 35*86400)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ImportFailures returns a stat panel showing failed imports in the past
// week.
func ImportFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Import Failures (7d)").
		Description("Failed corpus imports in the last 7 days").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(dvf_import_errors_total{job="`+Job+`"}[7d]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ImportedRows returns a stat panel showing sales loaded in the past week.
func ImportedRows() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Rows Imported (7d)").
		Description("Sales loaded by corpus imports in the last 7 days").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(dvf_import_rows_total{job="`+Job+`"}[7d]))`, "", "A")).
		Unit("short").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}

// ImportDuration returns a timeseries panel showing the p95 import duration.
func ImportDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Import Duration (p95)").
		Description("95th percentile corpus import duration").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			Quantile(0.95, "dvf_import_duration_seconds", "1d"),
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
