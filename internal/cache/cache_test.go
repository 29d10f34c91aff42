package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dvf-estimator/internal/cache"
	"github.com/donaldgifford/dvf-estimator/internal/store/mocks"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func sales() []domain.Sale {
	return []domain.Sale{
		{
			Nature:       "Vente",
			Price:        domain.NewAmount(180000),
			PostalCode:   "72000",
			Municipality: "le mans",
			PropertyKind: "Maison",
			BuiltSurface: domain.NewAmount(90),
		},
		{
			Nature:       "Vente",
			Price:        domain.NewAmount(210000),
			PostalCode:   "72000",
			Municipality: "le mans",
			PropertyKind: "Maison",
			BuiltSurface: domain.NewAmount(100),
		},
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dvf:sales:72000:maison", cache.Key(" 72000 ", "  Maison"))
	assert.Equal(t, cache.Key("72000", "MAISON"), cache.Key("72000", "maison"))
}

func TestCachedSource_MissThenHit(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	src := mocks.NewMockSalesSource(t)
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72000", "Maison").
		Return(sales(), nil).
		Once()

	c := cache.New(src, rdb, cache.WithTTL(10*time.Minute))
	ctx := context.Background()

	got, err := c.FindCandidateSales(ctx, "72000", "Maison")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, mr.Exists("dvf:sales:72000:maison"))
	assert.Equal(t, 10*time.Minute, mr.TTL("dvf:sales:72000:maison"))

	// Second lookup is served from Redis; the mock allows one call only.
	got, err = c.FindCandidateSales(ctx, "72000", "Maison")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 180000, got[0].Price.Value, 1e-9)
	assert.True(t, got[0].BuiltSurface.Valid)
}

func TestCachedSource_CachesEmptyResult(t *testing.T) {
	t.Parallel()

	_, rdb := setupRedis(t)
	src := mocks.NewMockSalesSource(t)
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72100", "appartement").
		Return(nil, nil).
		Once()

	c := cache.New(src, rdb)
	for range 2 {
		got, err := c.FindCandidateSales(context.Background(), "72100", "appartement")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestCachedSource_SourceErrorIsNotCached(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	src := mocks.NewMockSalesSource(t)
	boom := errors.New("connection refused")
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72000", "maison").
		Return(nil, boom).
		Once()

	c := cache.New(src, rdb)
	_, err := c.FindCandidateSales(context.Background(), "72000", "maison")
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("dvf:sales:72000:maison"))
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	mr.Close()

	src := mocks.NewMockSalesSource(t)
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72000", "maison").
		Return(sales(), nil).
		Times(2)

	c := cache.New(src, rdb)
	for range 2 {
		got, err := c.FindCandidateSales(context.Background(), "72000", "maison")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	}
}

func TestCachedSource_CorruptEntryIsReloaded(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set("dvf:sales:72000:maison", "{not json"))

	src := mocks.NewMockSalesSource(t)
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72000", "maison").
		Return(sales(), nil).
		Once()

	c := cache.New(src, rdb)
	got, err := c.FindCandidateSales(context.Background(), "72000", "maison")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCachedSource_ConcurrentMisses(t *testing.T) {
	t.Parallel()

	_, rdb := setupRedis(t)
	src := mocks.NewMockSalesSource(t)
	src.EXPECT().
		FindCandidateSales(mock.Anything, "72000", "maison").
		Return(sales(), nil).
		Maybe()

	c := cache.New(src, rdb)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.FindCandidateSales(context.Background(), "72000", "maison")
			assert.NoError(t, err)
			assert.Len(t, got, 2)
		}()
	}
	wg.Wait()
}

func TestCachedSource_Invalidate(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set("dvf:sales:72000:maison", "[]"))
	require.NoError(t, mr.Set("dvf:sales:72100:appartement", "[]"))
	require.NoError(t, mr.Set("unrelated", "keep"))

	c := cache.New(mocks.NewMockSalesSource(t), rdb)
	n, err := c.Invalidate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.False(t, mr.Exists("dvf:sales:72000:maison"))
	assert.False(t, mr.Exists("dvf:sales:72100:appartement"))
	assert.True(t, mr.Exists("unrelated"))
}

// gatedSource blocks every lookup until release is closed and counts calls.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	rows    []domain.Sale

	mu    sync.Mutex
	calls int
}

func newGatedSource(rows []domain.Sale) *gatedSource {
	return &gatedSource{
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
		rows:    rows,
	}
}

func (g *gatedSource) FindCandidateSales(ctx context.Context, _, _ string) ([]domain.Sale, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	g.started <- struct{}{}

	select {
	case <-g.release:
		return g.rows, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedSource) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestCachedSource_CanceledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	_, rdb := setupRedis(t)
	src := newGatedSource(sales())
	c := cache.New(src, rdb, cache.WithLoadTimeout(5*time.Second))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.FindCandidateSales(ctxA, "72000", "maison")
		errA <- err
	}()
	<-src.started

	type result struct {
		sales []domain.Sale
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		got, err := c.FindCandidateSales(context.Background(), "72000", "maison")
		resB <- result{got, err}
	}()

	// Give B time to join the in-flight load before A gives up.
	time.Sleep(20 * time.Millisecond)
	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(src.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Len(t, b.sales, 2)
}

func TestCachedSource_LoadTimeout(t *testing.T) {
	t.Parallel()

	_, rdb := setupRedis(t)
	src := newGatedSource(sales())
	c := cache.New(src, rdb, cache.WithLoadTimeout(50*time.Millisecond))

	_, err := c.FindCandidateSales(context.Background(), "72000", "maison")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCachedSource_InvalidateDuringLoadSkipsStaleFill(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	src := newGatedSource(sales())
	c := cache.New(src, rdb)

	done := make(chan error, 1)
	go func() {
		_, err := c.FindCandidateSales(context.Background(), "72000", "maison")
		done <- err
	}()
	<-src.started

	// The corpus is replaced while the load is in flight.
	_, err := c.Invalidate(context.Background())
	require.NoError(t, err)

	close(src.release)
	require.NoError(t, <-done)
	assert.False(t, mr.Exists("dvf:sales:72000:maison"))

	// The next lookup loads and caches under the new generation.
	_, err = c.FindCandidateSales(context.Background(), "72000", "maison")
	require.NoError(t, err)
	assert.True(t, mr.Exists("dvf:sales:72000:maison"))
	assert.Equal(t, 2, src.Calls())
}

func TestCachedSource_Ping(t *testing.T) {
	t.Parallel()

	mr, rdb := setupRedis(t)
	c := cache.New(mocks.NewMockSalesSource(t), rdb)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
