// Package store defines the datastore abstraction for the DVF estimator.
// The valuation path depends only on SalesSource; operational commands and
// the HTTP API use the wider Store interface.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// SalesSource is the boundary the valuation engine reads comparables through.
// Implementations may pre-filter server-side but must not apply business rules.
type SalesSource interface {
	FindCandidateSales(ctx context.Context, postalCode, propertyKind string) ([]domain.Sale, error)
}

// Store defines all data access operations for the DVF estimator.
type Store interface {
	SalesSource

	// Corpus
	ReplaceSales(ctx context.Context, sales []domain.Sale) (int, error)
	ListSales(ctx context.Context, q *SaleQuery) ([]domain.Sale, int, error)
	GetCorpusStats(ctx context.Context) (*domain.CorpusStats, error)

	// Imports
	InsertImportRun(ctx context.Context, source string) (id string, err error)
	CompleteImportRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListImportRuns(ctx context.Context, limit int) ([]domain.ImportRun, error)
	RecoverStaleImportRuns(ctx context.Context, olderThan time.Duration) (int, error)
	AcquireImportLock(ctx context.Context, holder string, ttl time.Duration) (bool, error)
	ReleaseImportLock(ctx context.Context, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
