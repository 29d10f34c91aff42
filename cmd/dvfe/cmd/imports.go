package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Trigger a corpus import",
		Long: "Asks the server to download the configured DVF datasets and replace the\n" +
			"corpus. The command waits until the import finishes.",
		Example: `  dvfe import
  dvfe import --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			res, err := c.TriggerImport(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(res)
			}
			return printImportResult(os.Stdout, res)
		},
	}
}

func importsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List recent import runs",
		Example: `  dvfe imports
  dvfe imports --limit 5 --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			runs, err := c.ListImports(context.Background(), limit)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(runs)
			}
			if len(runs) == 0 {
				fmt.Println("No import runs found.")
				return nil
			}
			return printImportRunsTable(os.Stdout, runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max runs to show")
	return cmd
}
