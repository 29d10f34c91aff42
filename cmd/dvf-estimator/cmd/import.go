package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/dvf-estimator/internal/config"
	"github.com/donaldgifford/dvf-estimator/internal/dvf"
	"github.com/donaldgifford/dvf-estimator/internal/engine"
	"github.com/donaldgifford/dvf-estimator/internal/notify"
	"github.com/donaldgifford/dvf-estimator/internal/store"
)

var importOutput string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Download the configured DVF datasets and rebuild the corpus",
	Long: "Downloads every configured DVF dataset, keeps the configured departments, " +
		"and replaces the corpus. With corpus.source json, or when --output is set, " +
		"the corpus is written as a JSON extract instead of the database.",
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "write a JSON extract to this path")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	out := importOutput
	if out == "" && cfg.Corpus.Source == config.SourceJSON {
		out = cfg.Corpus.ExtractPath
	}

	if out != "" {
		eng := engine.NewEngine(store.NewMemoryStore(nil), notify.NewNoOpNotifier(logger), engineOptions(cfg, logger)...)
		sales, results, err := eng.BuildCorpus(ctx)
		if err != nil {
			return fmt.Errorf("building corpus: %w", err)
		}
		if err := dvf.WriteExtractFile(out, sales); err != nil {
			return fmt.Errorf("writing extract: %w", err)
		}
		logger.Info("extract written", "path", out, "sales", len(sales))
		return printJSON(cmd, &engine.ImportResult{Rows: len(sales), Datasets: results})
	}

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := engineOptions(cfg, logger)
	if cfg.Cache.Enabled {
		cached, closeCache := newCache(&cfg.Cache, st, logger)
		defer closeCache()
		opts = append(opts, engine.WithCacheInvalidator(cached))
	}

	eng := engine.NewEngine(st, notify.NewNoOpNotifier(logger), opts...)
	res, err := eng.RunImport(ctx)
	if err != nil {
		return fmt.Errorf("running import: %w", err)
	}
	return printJSON(cmd, res)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
