package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/dvf-estimator/internal/api/handlers"
	"github.com/donaldgifford/dvf-estimator/internal/api/middleware"
	"github.com/donaldgifford/dvf-estimator/internal/engine"
	"github.com/donaldgifford/dvf-estimator/internal/tracing"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and import scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	tp, shutdownTracing, err := tracing.Setup(ctx, &cfg.Tracing, serviceName, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("shutting down tracing", "error", err)
		}
	}()

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, closeNotifier := newNotifier(&cfg.Notifications, logger)
	defer closeNotifier()

	opts := append(engineOptions(cfg, logger), engine.WithTracerProvider(tp))
	health := handlers.NewHealthHandler(st)

	if cfg.Cache.Enabled {
		cached, closeCache := newCache(&cfg.Cache, st, logger)
		defer closeCache()

		if err := cached.Ping(ctx); err != nil {
			logger.Warn("cache unavailable, reads fall through to the store", "addr", cfg.Cache.Addr, "error", err)
		}
		opts = append(opts, engine.WithSalesSource(cached), engine.WithCacheInvalidator(cached))
		health.WithOptionalCheck("cache", cached)
	}

	eng := engine.NewEngine(st, notifier, opts...)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.ImportInterval, logger)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer func() {
		<-sched.Stop().Done()
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestLog(logger))
	e.Use(middleware.Metrics())
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		e.Use(middleware.RateLimit(limiter, "/api/v1/estimate"))
	}

	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("DVF Estimator API", Version))
	handlers.RegisterEstimateRoutes(api, handlers.NewEstimateHandler(eng))
	handlers.RegisterSalesRoutes(api, handlers.NewSalesHandler(st))
	handlers.RegisterImportRoutes(api, handlers.NewImportHandler(eng, st))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"addr", addr,
		"version", Version,
		"corpus_source", cfg.Corpus.Source,
		"cache", cfg.Cache.Enabled,
		"import_interval", cfg.Schedule.ImportInterval,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
