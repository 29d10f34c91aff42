// Package cmd implements the CLI commands for dvf-estimator.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/dvf-estimator/internal/config"
)

var (
	cfgFile  string
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "dvf-estimator",
	Short: "Estimate French property prices from DVF sales",
	Long: "An API-first service that estimates residential property prices from " +
		"comparable sales in the French DVF (demandes de valeurs foncières) open data, " +
		"imports the yearly datasets on a schedule, and forwards seller leads.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.LoadDotEnv(envFiles...)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringSliceVar(&envFiles, "env-file", nil, ".env files to load before reading config (default .env)")
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
