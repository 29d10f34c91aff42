// Package cache provides a Redis read-through cache in front of the sales
// corpus. Candidate lists are keyed by postal code and property kind, the
// same coarse filter the stores apply server-side.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
	"github.com/donaldgifford/dvf-estimator/internal/store"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

const (
	keyPrefix          = "dvf:sales:"
	generationKey      = "dvf:cache:generation"
	defaultTTL         = time.Hour
	defaultLoadTimeout = 10 * time.Second
	scanCount          = 500
)

// setIfGeneration writes a candidate list only while the cache generation
// still matches the one read before the load started.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[1]) or "0"
if gen ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// CachedSource decorates a SalesSource with a Redis cache. Redis failures
// never fail a lookup: they are logged and the wrapped source is queried.
type CachedSource struct {
	next        store.SalesSource
	rdb         redis.Cmdable
	ttl         time.Duration
	loadTimeout time.Duration
	log         *slog.Logger
	flight      singleflight.Group
}

// Option configures a CachedSource.
type Option func(*CachedSource)

// WithTTL sets the expiry of cached candidate lists.
func WithTTL(ttl time.Duration) Option {
	return func(c *CachedSource) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLoadTimeout bounds a shared load from the wrapped source. The load is
// detached from the callers' contexts so one caller giving up does not fail
// the others.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *CachedSource) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *CachedSource) {
		c.log = l
	}
}

// New wraps next with a cache stored in rdb.
func New(next store.SalesSource, rdb redis.Cmdable, opts ...Option) *CachedSource {
	c := &CachedSource{
		next: next,
		rdb:  rdb,
		ttl:         defaultTTL,
		loadTimeout: defaultLoadTimeout,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the cache key for a candidate lookup.
func Key(postalCode, propertyKind string) string {
	return keyPrefix + strings.TrimSpace(postalCode) + ":" + valuation.NormalizeKind(propertyKind)
}

// FindCandidateSales returns cached candidates, loading them from the wrapped
// source on a miss. Concurrent misses for the same key share one load.
func (c *CachedSource) FindCandidateSales(
	ctx context.Context,
	postalCode, propertyKind string,
) ([]domain.Sale, error) {
	key := Key(postalCode, propertyKind)

	if sales, ok := c.get(ctx, key); ok {
		return sales, nil
	}

	ch := c.flight.DoChan(key, func() (any, error) {
		return c.load(ctx, key, postalCode, propertyKind)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Callers sharing a load get their own slice header.
		return slices.Clone(res.Val.([]domain.Sale)), nil
	}
}

// load queries the wrapped source and fills the cache unless the cache was
// invalidated while the query ran.
func (c *CachedSource) load(
	ctx context.Context,
	key, postalCode, propertyKind string,
) ([]domain.Sale, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
	defer cancel()

	gen, genErr := c.generation(ctx)

	sales, err := c.next.FindCandidateSales(ctx, postalCode, propertyKind)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		c.set(ctx, key, gen, sales)
	}
	return sales, nil
}

func (c *CachedSource) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.log.Warn("cache generation read failed", "error", err)
		return 0, err
	}
	return gen, nil
}

func (c *CachedSource) get(ctx context.Context, key string) ([]domain.Sale, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		c.log.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}

	var sales []domain.Sale
	if err := json.Unmarshal(data, &sales); err != nil {
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		c.log.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return sales, true
}

func (c *CachedSource) set(ctx context.Context, key string, gen int64, sales []domain.Sale) {
	if sales == nil {
		sales = []domain.Sale{}
	}
	data, err := json.Marshal(sales)
	if err != nil {
		c.log.Warn("encoding cache entry", "key", key, "error", err)
		return
	}
	written, err := setIfGeneration.Run(ctx, c.rdb,
		[]string{generationKey, key},
		gen, data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
		return
	}
	if written == 0 {
		c.log.Debug("skipping stale cache fill", "key", key, "generation", gen)
	}
}

// Invalidate removes every cached candidate list and returns the number of
// keys deleted. It is called after the corpus is replaced. Bumping the
// generation first keeps loads that started before the replace from writing
// their results back.
func (c *CachedSource) Invalidate(ctx context.Context) (int, error) {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return 0, fmt.Errorf("bumping cache generation: %w", err)
	}

	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", scanCount).Result()
		if err != nil {
			return deleted, fmt.Errorf("scanning cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("deleting cache keys: %w", err)
			}
			deleted += int(n)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

// Ping checks the Redis connection.
func (c *CachedSource) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
