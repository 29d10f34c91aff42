// Package cmd implements the dvfe CLI commands.
package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/dvf-estimator/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "dvfe",
		Short: "CLI client for the DVF Estimator",
		Long: "dvfe is a command-line client for the DVF Estimator API.\n" +
			"It requests estimates, browses the sales corpus, and triggers\n" +
			"dataset imports from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.dvfe.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Duration("timeout", 0, "request timeout (0 uses the client default)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout")))

	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(salesCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(importsCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dvfe")
	}

	viper.SetEnvPrefix("DVFE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	var opts []apiclient.Option
	if d := viper.GetDuration("timeout"); d > 0 {
		opts = append(opts, apiclient.WithHTTPClient(&http.Client{Timeout: d}))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
