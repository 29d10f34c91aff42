// Package middleware provides Echo middleware for the estimator HTTP server.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
)

// unmatchedPath labels requests that matched no route, so scanners probing
// random URLs cannot inflate label cardinality.
const unmatchedPath = "unmatched"

// metricsSkipPaths defines URL paths excluded from HTTP request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
	"/readyz":  {},
}

// healthGauges maps probe paths to their up/down gauge.
var healthGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Probe paths only update their up/down gauges.
func Metrics() echo.MiddlewareFunc {
	var (
		once   sync.Once
		routes map[string]struct{}
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Routes are all registered before the server accepts requests.
			once.Do(func() {
				routes = make(map[string]struct{})
				for _, r := range c.Echo().Routes() {
					routes[r.Path] = struct{}{}
				}
			})

			path := c.Path()
			if _, ok := routes[path]; !ok {
				path = unmatchedPath
			}

			if _, skip := metricsSkipPaths[path]; skip {
				err := next(c)
				updateHealthGauge(path, c.Response().Status)
				return err
			}

			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(responseStatus(c, err))
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(duration)
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

// responseStatus returns the status that will be sent. Errors returned up
// the chain are written later by the echo error handler.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// updateHealthGauge sets the gauge for a health path to 1 (success) or 0 (failure).
func updateHealthGauge(path string, status int) {
	gauge, ok := healthGauges[path]
	if !ok {
		return
	}

	if status >= 200 && status < 300 {
		gauge.Set(1)
	} else {
		gauge.Set(0)
	}
}
