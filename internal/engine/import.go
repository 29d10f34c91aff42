package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/dvf-estimator/internal/dvf"
	"github.com/donaldgifford/dvf-estimator/internal/metrics"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

var (
	// ErrImportInProgress is returned when another import holds the lock.
	ErrImportInProgress = errors.New("corpus import already in progress")
	// ErrImportNotConfigured is returned when no datasets are configured.
	ErrImportNotConfigured = errors.New("no dvf datasets configured")
	// ErrEmptyImport is returned when the datasets yield no sale. The
	// existing corpus is kept.
	ErrEmptyImport = errors.New("dvf datasets produced no sales")
)

// DatasetResult reports how one dataset was parsed.
type DatasetResult struct {
	Year  int            `json:"year"`
	URL   string         `json:"url"`
	Stats dvf.ParseStats `json:"stats"`
}

// ImportResult summarizes a completed corpus import.
type ImportResult struct {
	RunID            string          `json:"run_id"`
	Rows             int             `json:"rows"`
	Datasets         []DatasetResult `json:"datasets"`
	CacheKeysDeleted int             `json:"cache_keys_deleted"`
	Duration         time.Duration   `json:"duration"`
}

// BuildCorpus loads every configured dataset and de-duplicates the sales
// across years.
func (eng *Engine) BuildCorpus(ctx context.Context) ([]domain.Sale, []DatasetResult, error) {
	if eng.loader == nil || len(eng.datasets) == 0 {
		return nil, nil, ErrImportNotConfigured
	}

	var (
		all     []domain.Sale
		results = make([]DatasetResult, 0, len(eng.datasets))
	)
	for _, ds := range eng.datasets {
		if err := ctx.Err(); err != nil {
			return nil, results, err
		}

		eng.log.Info("loading dvf dataset", "year", ds.Year, "url", ds.URL)
		sales, stats, err := eng.loader.FetchSales(ctx, ds.URL, eng.filter)
		if err != nil {
			return nil, results, fmt.Errorf("loading dataset %d: %w", ds.Year, err)
		}
		results = append(results, DatasetResult{Year: ds.Year, URL: ds.URL, Stats: stats})
		all = append(all, sales...)
	}

	unique := dvf.Dedupe(all)
	eng.log.Info("dvf datasets consolidated",
		"datasets", len(results),
		"sales", len(all),
		"unique", len(unique),
	)
	return unique, results, nil
}

// RunImport rebuilds the corpus from the configured datasets, replaces the
// stored sales and flushes the candidate cache. Only one import runs at a
// time across processes sharing the store.
func (eng *Engine) RunImport(ctx context.Context) (*ImportResult, error) {
	if eng.loader == nil || len(eng.datasets) == 0 {
		return nil, ErrImportNotConfigured
	}

	ok, err := eng.store.AcquireImportLock(ctx, eng.holder, eng.importLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}
	if !ok {
		return nil, ErrImportInProgress
	}
	defer func() {
		if err := eng.store.ReleaseImportLock(context.WithoutCancel(ctx), eng.holder); err != nil {
			eng.log.Error("releasing import lock", "error", err)
		}
	}()

	runID, err := eng.store.InsertImportRun(ctx, eng.importSource())
	if err != nil {
		return nil, fmt.Errorf("recording import run: %w", err)
	}

	start := time.Now()
	res, runErr := eng.runImport(ctx)
	elapsed := time.Since(start)
	metrics.ImportDuration.Observe(elapsed.Seconds())

	status, errText, rows := domain.ImportSucceeded, "", 0
	if runErr != nil {
		status, errText = domain.ImportFailed, runErr.Error()
		metrics.ImportErrorsTotal.Inc()
	} else {
		rows = res.Rows
	}

	if err := eng.store.CompleteImportRun(context.WithoutCancel(ctx), runID, status, errText, rows); err != nil {
		eng.log.Error("completing import run", "run_id", runID, "error", err)
	}

	if runErr != nil {
		eng.log.Error("corpus import failed", "run_id", runID, "error", runErr)
		return nil, runErr
	}

	res.RunID = runID
	res.Duration = elapsed
	eng.log.Info("corpus import complete",
		"run_id", runID,
		"rows", res.Rows,
		"cache_keys_deleted", res.CacheKeysDeleted,
		"duration", elapsed,
	)
	return res, nil
}

func (eng *Engine) runImport(ctx context.Context) (*ImportResult, error) {
	sales, datasets, err := eng.BuildCorpus(ctx)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, ErrEmptyImport
	}

	n, err := eng.store.ReplaceSales(ctx, sales)
	if err != nil {
		return nil, fmt.Errorf("replacing sales: %w", err)
	}

	metrics.ImportRowsTotal.Add(float64(n))
	metrics.CorpusSales.Set(float64(n))
	metrics.ImportLastSuccessTimestamp.Set(float64(eng.now().Unix()))

	res := &ImportResult{Rows: n, Datasets: datasets}

	if eng.cache != nil {
		deleted, err := eng.cache.Invalidate(ctx)
		if err != nil {
			// Stale entries expire with their TTL.
			eng.log.Warn("invalidating candidate cache", "error", err)
		}
		res.CacheKeysDeleted = deleted
	}

	return res, nil
}

// importSource names the run, e.g. "dvf:2024,2023".
func (eng *Engine) importSource() string {
	years := make([]string, 0, len(eng.datasets))
	for _, ds := range eng.datasets {
		years = append(years, strconv.Itoa(ds.Year))
	}
	return "dvf:" + strings.Join(years, ",")
}

// RecoverStaleImports marks import runs left running by a crashed process
// as failed.
func (eng *Engine) RecoverStaleImports(ctx context.Context) {
	n, err := eng.store.RecoverStaleImportRuns(ctx, eng.importLockTTL)
	if err != nil {
		eng.log.Error("recovering stale import runs", "error", err)
		return
	}
	if n > 0 {
		eng.log.Warn("marked stale import runs as failed", "count", n)
	}
}
