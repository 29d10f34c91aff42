package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/dvf-estimator/internal/config"
	"github.com/donaldgifford/dvf-estimator/internal/store"
)

var migrateList bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "list embedded migrations and exit")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migrateList {
		versions, err := store.MigrationVersions()
		if err != nil {
			return fmt.Errorf("listing migrations: %w", err)
		}
		for _, v := range versions {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Corpus.Source != config.SourcePostgres {
		return fmt.Errorf("migrations need corpus.source %q (got %q)", config.SourcePostgres, cfg.Corpus.Source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	logger.Info("running migrations", "host", cfg.Database.Host, "database", cfg.Database.Name)

	if err := store.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("migrations complete")
	return nil
}
