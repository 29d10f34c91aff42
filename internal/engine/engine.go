// Package engine wires the valuation core to its collaborators: the sales
// corpus, the candidate cache, lead notifiers and the DVF importer.
package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/dvf-estimator/internal/dvf"
	"github.com/donaldgifford/dvf-estimator/internal/notify"
	"github.com/donaldgifford/dvf-estimator/internal/store"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

const (
	defaultFetchTimeout  = 5 * time.Second
	defaultImportLockTTL = 2 * time.Hour
	tracerName           = "github.com/donaldgifford/dvf-estimator/internal/engine"
)

// DatasetLoader downloads and parses one DVF dataset.
type DatasetLoader interface {
	FetchSales(ctx context.Context, url string, filter dvf.Filter) ([]domain.Sale, dvf.ParseStats, error)
}

// CacheInvalidator drops cached candidate lists after the corpus changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

// Dataset is one yearly archive to import.
type Dataset struct {
	Year int
	URL  string
}

// Engine orchestrates estimates and corpus imports.
type Engine struct {
	store    store.Store
	source   store.SalesSource
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer

	params       valuation.Params
	fetchTimeout time.Duration

	loader        DatasetLoader
	cache         CacheInvalidator
	datasets      []Dataset
	filter        dvf.Filter
	importLockTTL time.Duration
	holder        string

	now func() time.Time
}

// NewEngine creates a new Engine with injected dependencies. Candidates are
// read from s unless WithSalesSource installs another source (a cache).
func NewEngine(s store.Store, n notify.Notifier, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:         s,
		source:        s,
		notifier:      n,
		log:           slog.Default(),
		tracer:        otel.Tracer(tracerName),
		params:        valuation.DefaultParams(),
		fetchTimeout:  defaultFetchTimeout,
		importLockTTL: defaultImportLockTTL,
		holder:        "dvf-estimator",
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracerProvider sets the OpenTelemetry provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithParams sets the valuation thresholds.
func WithParams(p valuation.Params) EngineOption {
	return func(e *Engine) {
		e.params = p
	}
}

// WithSalesSource sets where comparables are read from.
func WithSalesSource(src store.SalesSource) EngineOption {
	return func(e *Engine) {
		e.source = src
	}
}

// WithFetchTimeout bounds each candidate fetch.
func WithFetchTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.fetchTimeout = d
		}
	}
}

// WithImporter configures corpus imports: the loader, the datasets to load
// and the row filter.
func WithImporter(l DatasetLoader, datasets []Dataset, filter dvf.Filter) EngineOption {
	return func(e *Engine) {
		e.loader = l
		e.datasets = datasets
		e.filter = filter
	}
}

// WithCacheInvalidator sets the cache flushed after an import.
func WithCacheInvalidator(c CacheInvalidator) EngineOption {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithImportLock sets the holder name and TTL of the import lock.
func WithImportLock(holder string, ttl time.Duration) EngineOption {
	return func(e *Engine) {
		if holder != "" {
			e.holder = holder
		}
		if ttl > 0 {
			e.importLockTTL = ttl
		}
	}
}

// Params returns the valuation thresholds in use.
func (eng *Engine) Params() valuation.Params {
	return eng.params
}
