package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

const defaultPoolSize = 10

// salesColumns is the COPY column order used by ReplaceSales.
var salesColumns = []string{
	"date_mutation", "nature_mutation", "valeur_fonciere",
	"no_voie", "type_de_voie", "voie",
	"code_postal", "commune", "type_local",
	"surface_reelle_bati", "nombre_pieces_principales", "surface_terrain",
}

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = int32(n) //nolint:gosec // pool size comes from validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// FindCandidateSales returns every sale for the postal code whose property
// kind matches case-insensitively. Nature and commune filtering is left to
// the valuation package.
func (s *PostgresStore) FindCandidateSales(
	ctx context.Context,
	postalCode, propertyKind string,
) ([]domain.Sale, error) {
	rows, err := s.pool.Query(ctx, queryFindCandidateSales, postalCode, propertyKind)
	if err != nil {
		return nil, fmt.Errorf("querying candidate sales: %w", err)
	}
	defer rows.Close()

	return scanSales(rows)
}

// ReplaceSales swaps the whole corpus for sales inside one transaction and
// returns the number of rows loaded. Rows are removed with DELETE rather than
// TRUNCATE so concurrent candidate reads keep seeing the previous corpus
// until commit instead of waiting on an exclusive lock.
func (s *PostgresStore) ReplaceSales(ctx context.Context, sales []domain.Sale) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, queryDeleteSales); err != nil {
		return 0, fmt.Errorf("deleting sales: %w", err)
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"dvf_sales"},
		salesColumns,
		pgx.CopyFromSlice(len(sales), func(i int) ([]any, error) {
			return saleRow(&sales[i]), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copying sales: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing sales: %w", err)
	}

	return int(n), nil
}

// ListSales queries sales with optional filters, returning results and total count.
func (s *PostgresStore) ListSales(
	ctx context.Context,
	q *SaleQuery,
) ([]domain.Sale, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting sales: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	sales, err := scanSales(rows)
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// GetCorpusStats returns the data quality summary of the corpus.
func (s *PostgresStore) GetCorpusStats(ctx context.Context) (*domain.CorpusStats, error) {
	st := &domain.CorpusStats{}
	err := s.pool.QueryRow(ctx, queryCorpusStats).Scan(
		&st.TotalSales, &st.PostalCodes, &st.MissingPrice, &st.MissingSurface,
		&st.FirstMutation, &st.LastMutation,
	)
	if err != nil {
		return nil, fmt.Errorf("querying corpus stats: %w", err)
	}
	return st, nil
}

// InsertImportRun records the start of an import and returns its UUID.
func (s *PostgresStore) InsertImportRun(ctx context.Context, source string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertImportRun, source).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting import run: %w", err)
	}
	return id, nil
}

// CompleteImportRun marks an import run as finished.
func (s *PostgresStore) CompleteImportRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	tag, err := s.pool.Exec(ctx, queryCompleteImportRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing import run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("completing import run %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListImportRuns returns the most recent import runs, newest first.
func (s *PostgresStore) ListImportRuns(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListImportRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	for rows.Next() {
		var r domain.ImportRun
		if err := rows.Scan(
			&r.ID, &r.Source, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecoverStaleImportRuns marks 'running' imports older than olderThan as
// failed, then prunes history older than 90 days. Returns the number of
// rows marked as failed.
func (s *PostgresStore) RecoverStaleImportRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleImportRunsFailed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale import runs failed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldImportRuns); err != nil {
		return affected, fmt.Errorf("deleting old import runs: %w", err)
	}

	return affected, nil
}

// AcquireImportLock takes the corpus import lock for holder. It returns false
// when another holder owns an unexpired lock.
func (s *PostgresStore) AcquireImportLock(
	ctx context.Context,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var name string
	err := s.pool.QueryRow(ctx, queryAcquireImportLock, holder, expiresAt).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("acquiring import lock: %w", err)
	}

	return true, nil
}

// ReleaseImportLock deletes the import lock if holder owns it.
func (s *PostgresStore) ReleaseImportLock(ctx context.Context, holder string) error {
	if _, err := s.pool.Exec(ctx, queryReleaseImportLock, holder); err != nil {
		return fmt.Errorf("releasing import lock: %w", err)
	}
	return nil
}

// scanSales scans rows from a dvf_sales query into a slice.
func scanSales(rows pgx.Rows) ([]domain.Sale, error) {
	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		var price, surface, rooms, land *float64
		if err := rows.Scan(
			&sale.ID, &sale.MutationDate, &sale.Nature, &price,
			&sale.StreetNumber, &sale.StreetType, &sale.Street,
			&sale.PostalCode, &sale.Municipality, &sale.PropertyKind,
			&surface, &rooms, &land,
		); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		sale.Price = amountFrom(price)
		sale.BuiltSurface = amountFrom(surface)
		sale.MainRooms = amountFrom(rooms)
		sale.LandSurface = amountFrom(land)
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// saleRow converts a sale into COPY values in salesColumns order.
func saleRow(s *domain.Sale) []any {
	return []any{
		s.MutationDate, s.Nature, s.Price.Ptr(),
		nullable(s.StreetNumber), nullable(s.StreetType), nullable(s.Street),
		s.PostalCode, s.Municipality, nullable(s.PropertyKind),
		s.BuiltSurface.Ptr(), s.MainRooms.Ptr(), s.LandSurface.Ptr(),
	}
}

func amountFrom(v *float64) domain.Amount {
	if v == nil {
		return domain.Amount{}
	}
	return domain.NewAmount(*v)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
