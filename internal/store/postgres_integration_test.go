//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/dvf-estimator/internal/store"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("dvf_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func corpus() []domain.Sale {
	return []domain.Sale{
		{
			MutationDate: day(2023, 5, 2),
			Nature:       "Vente",
			Price:        domain.NewAmount(180000),
			StreetNumber: "12",
			StreetType:   "RUE",
			Street:       "DES ACACIAS",
			PostalCode:   "72000",
			Municipality: "le mans",
			PropertyKind: "Maison",
			BuiltSurface: domain.NewAmount(90),
			MainRooms:    domain.NewAmount(4),
			LandSurface:  domain.NewAmount(400),
		},
		{
			MutationDate: day(2024, 1, 10),
			Nature:       "Vente",
			Price:        domain.NewAmount(95000),
			PostalCode:   "72000",
			Municipality: "le mans",
			PropertyKind: "Appartement",
			BuiltSurface: domain.NewAmount(45),
		},
		{
			MutationDate: day(2022, 9, 30),
			Nature:       "Vente",
			PostalCode:   "72000",
			Municipality: "le mans",
			PropertyKind: "MAISON",
		},
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_ReplaceAndFindSales(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	n, err := s.ReplaceSales(ctx, corpus())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.FindCandidateSales(ctx, "72000", "maison")
	require.NoError(t, err)
	require.Len(t, got, 2)

	var full, bare *domain.Sale
	for i := range got {
		if got[i].Price.Valid {
			full = &got[i]
		} else {
			bare = &got[i]
		}
	}
	require.NotNil(t, full)
	require.NotNil(t, bare)

	assert.InDelta(t, 180000, full.Price.Value, 1e-9)
	assert.InDelta(t, 90, full.BuiltSurface.Value, 1e-9)
	assert.InDelta(t, 400, full.LandSurface.Value, 1e-9)
	assert.Equal(t, "DES ACACIAS", full.Street)
	require.NotNil(t, full.MutationDate)
	assert.Equal(t, day(2023, 5, 2).Format(time.DateOnly), full.MutationDate.Format(time.DateOnly))

	assert.False(t, bare.BuiltSurface.Valid)
	assert.Empty(t, bare.Street)

	// A second replace swaps the corpus rather than appending.
	n, err = s.ReplaceSales(ctx, corpus()[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = s.FindCandidateSales(ctx, "72000", "Maison")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPostgresStore_ListSales(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.ReplaceSales(ctx, corpus())
	require.NoError(t, err)

	kind := "maison"
	got, total, err := s.ListSales(ctx, &store.SaleQuery{PropertyKind: &kind, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 1)
	assert.InDelta(t, 180000, got[0].Price.Value, 1e-9, "newest first")
}

func TestPostgresStore_GetCorpusStats(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.ReplaceSales(ctx, corpus())
	require.NoError(t, err)

	stats, err := s.GetCorpusStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSales)
	assert.Equal(t, 1, stats.PostalCodes)
	assert.Equal(t, 1, stats.MissingPrice)
	assert.Equal(t, 1, stats.MissingSurface)
	require.NotNil(t, stats.FirstMutation)
	assert.Equal(t, "2022-09-30", stats.FirstMutation.Format(time.DateOnly))
}

func TestPostgresStore_ImportRunLifecycle(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	id, err := s.InsertImportRun(ctx, "dvf:2024")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, s.CompleteImportRun(ctx, id, domain.ImportSucceeded, "", 42))

	runs, err := s.ListImportRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.ImportSucceeded, runs[0].Status)
	require.NotNil(t, runs[0].RowsAffected)
	assert.Equal(t, 42, *runs[0].RowsAffected)

	err = s.CompleteImportRun(ctx, "00000000-0000-0000-0000-000000000000", domain.ImportFailed, "x", 0)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.InsertImportRun(ctx, "dvf:2023")
	require.NoError(t, err)
	n, err := s.RecoverStaleImportRuns(ctx, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresStore_ImportLock(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	ok, err := s.AcquireImportLock(ctx, "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireImportLock(ctx, "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ReleaseImportLock(ctx, "a"))

	ok, err = s.AcquireImportLock(ctx, "b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostgresStore_ReadsDuringReplaceAreNotBlocked(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.ReplaceSales(ctx, corpus())
	require.NoError(t, err)

	next := corpus()
	for i := range 50000 {
		next = append(next, domain.Sale{
			Nature:       "Vente",
			Price:        domain.NewAmount(float64(100000 + i)),
			PostalCode:   "72100",
			Municipality: "le mans",
			PropertyKind: "Appartement",
			BuiltSurface: domain.NewAmount(50),
		})
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.ReplaceSales(ctx, next)
		done <- err
	}()

	// Both corpora hold the same two houses in 72000, so every read during
	// the replace sees exactly two rows.
	for replacing := true; replacing; {
		select {
		case err := <-done:
			require.NoError(t, err)
			replacing = false
		default:
		}

		readCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		got, err := s.FindCandidateSales(readCtx, "72000", "maison")
		cancel()
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}

	stats, err := s.GetCorpusStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50003, stats.TotalSales)
}

func TestPostgresStore_FindCandidateSales_PaddedKind(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	padded := corpus()[:1]
	padded[0].PropertyKind = " Maison "
	_, err := s.ReplaceSales(ctx, padded)
	require.NoError(t, err)

	got, err := s.FindCandidateSales(ctx, "72000", "maison")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
