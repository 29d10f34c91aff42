package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/dvf-estimator/internal/cache"
	"github.com/donaldgifford/dvf-estimator/internal/config"
	"github.com/donaldgifford/dvf-estimator/internal/dvf"
	"github.com/donaldgifford/dvf-estimator/internal/engine"
	"github.com/donaldgifford/dvf-estimator/internal/notify"
	"github.com/donaldgifford/dvf-estimator/internal/store"
	"github.com/donaldgifford/dvf-estimator/pkg/logger"
)

const serviceName = "dvf-estimator"

// loadConfig reads the config file and builds the process logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewWithOptions(os.Stderr, logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
	})
	slog.SetDefault(log)
	return cfg, log, nil
}

// openStore opens the configured corpus store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, func(), error) {
	if cfg.Corpus.Source == config.SourceJSON {
		sales, err := dvf.ReadExtractFile(cfg.Corpus.ExtractPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warn("extract not found, starting with an empty corpus", "path", cfg.Corpus.ExtractPath)
		case err != nil:
			return nil, nil, fmt.Errorf("loading extract: %w", err)
		default:
			log.Info("corpus loaded from extract", "path", cfg.Corpus.ExtractPath, "sales", len(sales))
		}
		return store.NewMemoryStore(sales), func() {}, nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithPoolSize(cfg.Database.PoolSize))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pg, pg.Close, nil
}

// newCache wraps next with the Redis candidate cache.
func newCache(cfg *config.CacheConfig, next store.SalesSource, log *slog.Logger) (*cache.CachedSource, func()) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := cache.New(next, rdb, cache.WithTTL(cfg.TTL), cache.WithLogger(log))
	return c, func() {
		if err := rdb.Close(); err != nil {
			log.Warn("closing redis client", "error", err)
		}
	}
}

// newNotifier fans leads out to every enabled target, or logs them when none
// is enabled.
func newNotifier(cfg *config.NotificationsConfig, log *slog.Logger) (notify.Notifier, func()) {
	multi := notify.NewMultiNotifier(log)
	var closers []func()

	if cfg.Discord.Enabled {
		multi.Add("discord", notify.NewDiscordNotifier(cfg.Discord.WebhookURL))
	}
	if cfg.Kafka.Enabled {
		kn := notify.NewKafkaNotifier(notify.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		multi.Add("kafka", kn)
		closers = append(closers, func() {
			if err := kn.Close(); err != nil {
				log.Warn("closing kafka writer", "error", err)
			}
		})
	}

	if multi.Len() == 0 {
		log.Info("no lead notifier enabled, leads will be logged")
		return notify.NewNoOpNotifier(log), func() {}
	}
	return multi, func() {
		for _, c := range closers {
			c()
		}
	}
}

// engineOptions returns the engine options derived from cfg. Callers append
// cache and tracing options as needed.
func engineOptions(cfg *config.Config, log *slog.Logger) []engine.EngineOption {
	fetcher := dvf.NewFetcher(
		dvf.WithHTTPClient(&http.Client{Timeout: cfg.DVF.HTTPTimeout}),
		dvf.WithLogger(log),
	)

	datasets := make([]engine.Dataset, 0, len(cfg.DVF.Datasets))
	for _, ds := range cfg.DVF.Datasets {
		datasets = append(datasets, engine.Dataset{Year: ds.Year, URL: ds.URL})
	}

	return []engine.EngineOption{
		engine.WithLogger(log),
		engine.WithParams(cfg.Valuation.Params()),
		engine.WithFetchTimeout(cfg.Corpus.FetchTimeout),
		engine.WithImporter(fetcher, datasets, dvf.Filter{Departments: cfg.DVF.Departments}),
	}
}
