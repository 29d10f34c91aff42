package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"

	// RequestIDKey is the echo context key holding the request ID.
	RequestIDKey = "request_id"
)

// probePaths are logged on their first success and on every failure.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured fields.
// It generates a request ID if none is provided and propagates it through
// the response header and echo context. Client errors log at WARN and
// server errors at ERROR.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probesSeen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set(RequestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status

			_, probe := probePaths[path]
			if probe && status < 400 {
				if _, seen := probesSeen.LoadOrStore(path, struct{}{}); seen {
					return err
				}
			}

			level := slog.LevelInfo
			switch {
			case status >= 500 && !probe:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			log.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
				"request_id", reqID,
			)

			return err
		}
	}
}
