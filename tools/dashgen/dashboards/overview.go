// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/dvf-estimator/tools/dashgen/panels"
)

// BuildOverview constructs the DVF Estimator overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("DVF Estimator Overview").
		Uid("dvf-overview").
		Tags([]string{"dvf", "dvf-estimator"}).
		Refresh("30s").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.CorpusSalesStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.RateLimited()))

	// Row 3: Estimates.
	b.WithRow(dashboard.NewRowBuilder("Estimates").
		WithPanel(panels.EstimatesByOutcome()).
		WithPanel(panels.NoEstimateShare()).
		WithPanel(panels.EstimateLatency()).
		WithPanel(panels.ComparablesMedian()).
		WithPanel(panels.CacheHitRatio()))

	// Row 4: Imports.
	b.WithRow(dashboard.NewRowBuilder("Imports").
		WithPanel(panels.LastImport()).
		WithPanel(panels.ImportFailures()).
		WithPanel(panels.ImportedRows()).
		WithPanel(panels.ImportDuration()))

	// Row 5: Leads.
	b.WithRow(dashboard.NewRowBuilder("Leads").
		WithPanel(panels.LeadsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
