package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/dvf-estimator/internal/api/client"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

func estimateCmd() *cobra.Command {
	var (
		req       apiclient.EstimateRequest
		land      float64
		parking   int
		firstname string
		lastname  string
		email     string
		phone     string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Request a price estimate",
		Long: "Requests a price estimate for a property. When contact details are given\n" +
			"they are submitted as a seller lead along with the estimate.",
		Example: `  dvfe estimate --postal-code 72000 --municipality "Le Mans" --kind maison --surface 100
  dvfe estimate --postal-code 72000 --municipality "Le Mans" --kind maison --surface 100 \
    --condition "bon état" --firstname Camille --lastname Martin \
    --email camille@example.fr --phone "06 12 34 56 78"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("land") {
				req.TotalLandSurfaceM2 = &land
			}
			if cmd.Flags().Changed("parking") {
				req.ParkingSpots = &parking
			}
			if email != "" || phone != "" {
				req.Contact = &domain.Lead{
					Firstname: firstname,
					Lastname:  lastname,
					Email:     email,
					Phone:     phone,
				}
			}

			c := newClient()
			resp, err := c.Estimate(context.Background(), &req)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printEstimate(os.Stdout, resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.PostalCode, "postal-code", "", "5-digit postal code (required)")
	f.StringVar(&req.Municipality, "municipality", "", "municipality name (required)")
	f.StringVar(&req.PropertyKind, "kind", "", "property kind: maison, appartement (required)")
	f.Float64Var(&req.SurfaceM2, "surface", 0, "built surface in m2 (required)")
	f.Float64Var(&land, "land", 0, "total land surface in m2")
	f.StringVar((*string)(&req.Condition), "condition", "", "condition label, e.g. \"bon état\"")
	f.StringVar((*string)(&req.Brightness), "brightness", "", "brightness label, e.g. lumineux")
	f.StringVar((*string)(&req.Noise), "noise", "", "noise label, e.g. calme")
	f.BoolVar(&req.Pool, "pool", false, "has a swimming pool")
	f.BoolVar(&req.ExceptionalView, "view", false, "has an exceptional view")
	f.IntVar(&parking, "parking", 0, "number of parking spots")
	f.StringVar(&firstname, "firstname", "", "contact first name")
	f.StringVar(&lastname, "lastname", "", "contact last name")
	f.StringVar(&email, "email", "", "contact email")
	f.StringVar(&phone, "phone", "", "contact phone (French format)")

	for _, name := range []string{"postal-code", "municipality", "kind", "surface"} {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}
	cmd.MarkFlagsRequiredTogether("firstname", "lastname", "email", "phone")

	return cmd
}
