package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
)

// RateLimiter hands out one token bucket per client key. Buckets idle for
// longer than the refill window are dropped.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
	nowFunc   func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter allows each client `requests` calls per `window`, refilled
// continuously, with a burst of `requests`.
func NewRateLimiter(requests int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   requests,
		idleTTL: window,
		clients: make(map[string]*clientBucket),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.nowFunc()
	return r
}

// Allow reports whether key may make a request now. When it may not, the
// returned duration is how long until the next token.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := r.nowFunc()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep(now)

	b, ok := r.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = b
	}
	b.lastSeen = now

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, r.idleTTL
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Len returns the number of tracked clients.
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// sweep drops idle buckets at most once per idle TTL. Callers hold mu.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	for key, b := range r.clients {
		if now.Sub(b.lastSeen) >= r.idleTTL {
			delete(r.clients, key)
		}
	}
	r.lastSweep = now
}

// RateLimit returns Echo middleware that rejects clients over their quota
// with 429 and a Retry-After header. Clients are keyed by c.RealIP(). When
// paths are given, only requests on those route templates are limited.
func RateLimit(r *RateLimiter, paths ...string) echo.MiddlewareFunc {
	limited := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		limited[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(limited) > 0 {
				if _, ok := limited[c.Path()]; !ok {
					return next(c)
				}
			}

			allowed, retryAfter := r.Allow(c.RealIP())
			if allowed {
				return next(c)
			}

			metrics.RateLimitedTotal.Inc()
			secs := int(math.Ceil(retryAfter.Seconds()))
			c.Response().Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			c.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"title":  http.StatusText(http.StatusTooManyRequests),
				"status": http.StatusTooManyRequests,
				"detail": "rate limit exceeded, retry later",
			})
		}
	}
}
