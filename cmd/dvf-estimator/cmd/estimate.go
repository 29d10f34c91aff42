package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dvf-estimator/internal/engine"
	"github.com/donaldgifford/dvf-estimator/internal/notify"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

var estimateFlags struct {
	postalCode   string
	municipality string
	kind         string
	surface      float64
	land         float64
	condition    string
	brightness   string
	noise        string
	pool         bool
	view         bool
	partyWalls   bool
	basement     bool
	parking      int
	outbuildings int
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a property against the configured corpus",
	Long: "Runs one estimate directly against the configured corpus, without the API " +
		"server. No lead is recorded.",
	Example: `  dvf-estimator estimate --postal-code 72000 --municipality "Le Mans" \
    --kind maison --surface 100 --condition "bon état" --parking 1`,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateFlags.postalCode, "postal-code", "", "5-digit postal code (required)")
	f.StringVar(&estimateFlags.municipality, "municipality", "", "municipality name (required)")
	f.StringVar(&estimateFlags.kind, "kind", "", "property kind, e.g. maison or appartement (required)")
	f.Float64Var(&estimateFlags.surface, "surface", 0, "built surface in m2 (required)")
	f.Float64Var(&estimateFlags.land, "land", 0, "total land surface in m2")
	f.StringVar(&estimateFlags.condition, "condition", "", "condition label")
	f.StringVar(&estimateFlags.brightness, "brightness", "", "brightness label")
	f.StringVar(&estimateFlags.noise, "noise", "", "noise label")
	f.BoolVar(&estimateFlags.pool, "pool", false, "has a swimming pool")
	f.BoolVar(&estimateFlags.view, "view", false, "has an exceptional view")
	f.BoolVar(&estimateFlags.partyWalls, "party-walls", false, "shares party walls")
	f.BoolVar(&estimateFlags.basement, "basement", false, "has a basement")
	f.IntVar(&estimateFlags.parking, "parking", 0, "number of parking spots")
	f.IntVar(&estimateFlags.outbuildings, "outbuildings", 0, "number of outbuildings")

	for _, name := range []string{"postal-code", "municipality", "kind", "surface"} {
		_ = estimateCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(estimateCmd)
}

// estimateQuery builds a query from the command flags. Only flags the user
// set are carried as optional fields.
func estimateQuery(cmd *cobra.Command) (*domain.ValuationQuery, error) {
	q := &domain.ValuationQuery{
		PostalCode:      estimateFlags.postalCode,
		Municipality:    estimateFlags.municipality,
		PropertyKind:    estimateFlags.kind,
		SurfaceM2:       estimateFlags.surface,
		Pool:            estimateFlags.pool,
		ExceptionalView: estimateFlags.view,
		PartyWalls:      estimateFlags.partyWalls,
		Basement:        estimateFlags.basement,
	}

	var ok bool
	if estimateFlags.condition != "" {
		if q.Condition, ok = valuation.ParseCondition(estimateFlags.condition); !ok {
			return nil, fmt.Errorf("unknown condition %q", estimateFlags.condition)
		}
	}
	if estimateFlags.brightness != "" {
		if q.Brightness, ok = valuation.ParseBrightness(estimateFlags.brightness); !ok {
			return nil, fmt.Errorf("unknown brightness %q", estimateFlags.brightness)
		}
	}
	if estimateFlags.noise != "" {
		if q.Noise, ok = valuation.ParseNoise(estimateFlags.noise); !ok {
			return nil, fmt.Errorf("unknown noise %q", estimateFlags.noise)
		}
	}

	if cmd.Flags().Changed("land") {
		q.TotalLandSurfaceM2 = &estimateFlags.land
	}
	if cmd.Flags().Changed("parking") {
		q.ParkingSpots = &estimateFlags.parking
	}
	if cmd.Flags().Changed("outbuildings") {
		q.Outbuildings = &estimateFlags.outbuildings
	}
	return q, nil
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	q, err := estimateQuery(cmd)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	eng := engine.NewEngine(st, notify.NewNoOpNotifier(logger), engineOptions(cfg, logger)...)

	v, err := eng.Estimate(ctx, q)
	if err != nil && !valuation.IsNoEstimate(err) {
		return fmt.Errorf("estimating: %w", err)
	}

	out := struct {
		Estimate *domain.Valuation `json:"estimate"`
		Reason   string            `json:"reason,omitempty"`
	}{Estimate: v, Reason: string(valuation.RejectionReason(err))}
	return printJSON(cmd, out)
}
