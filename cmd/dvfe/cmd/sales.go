package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/dvf-estimator/internal/api/client"
)

func salesCmd() *cobra.Command {
	var params apiclient.ListSalesParams

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List sales in the corpus",
		Example: `  dvfe sales --postal-code 72000 --kind maison
  dvfe sales --municipality "Le Mans" --since 2023-01-01 --order-by price_per_m2
  dvfe sales --postal-code 72000 --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListSales(context.Background(), &params)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Sales) == 0 {
				fmt.Println("No sales found.")
				return nil
			}
			if err := printSalesTable(os.Stdout, resp.Sales); err != nil {
				return err
			}
			fmt.Printf("\nShowing %d-%d of %d\n", resp.Offset+1, resp.Offset+len(resp.Sales), resp.Total)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.PostalCode, "postal-code", "", "filter by postal code")
	f.StringVar(&params.Municipality, "municipality", "", "filter by municipality")
	f.StringVar(&params.PropertyKind, "kind", "", "filter by property kind")
	f.Float64Var(&params.MinPrice, "min-price", 0, "minimum price in EUR")
	f.Float64Var(&params.MaxPrice, "max-price", 0, "maximum price in EUR")
	f.StringVar(&params.Since, "since", "", "only sales on or after this date (YYYY-MM-DD)")
	f.IntVar(&params.Limit, "limit", 50, "max results")
	f.IntVar(&params.Offset, "offset", 0, "pagination offset")
	f.StringVar(&params.OrderBy, "order-by", "", "sort field: date, price, price_per_m2")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			st, err := c.CorpusStats(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(st)
			}
			return printCorpusStats(os.Stdout, st)
		},
	}
}
