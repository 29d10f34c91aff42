// Package handlers implements HTTP handlers for the DVF estimator API.
package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store    Pinger
	optional map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler that is ready when s answers.
func NewHealthHandler(s Pinger) *HealthHandler {
	return &HealthHandler{store: s, optional: map[string]Pinger{}}
}

// WithOptionalCheck adds a dependency whose state is reported by /readyz
// without failing it, such as the cache the estimator can run without.
func (h *HealthHandler) WithOptionalCheck(name string, p Pinger) *HealthHandler {
	h.optional[name] = p
	return h
}

// StatusResponse is the body of the liveness endpoint.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse is the body of the readiness endpoint.
type ReadyResponse struct {
	Status string            `json:"status"           example:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz returns 200 if the process is running.
//
// @Summary Liveness check
// @Description Returns 200 if the process is running.
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the sales store is reachable, 503 otherwise.
// Optional dependencies are listed under checks.
//
// @Summary Readiness check
// @Description Returns 200 if the sales store is reachable, 503 otherwise.
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.store.Ping(ctx); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			ReadyResponse{Status: "unavailable"},
		)
	}

	resp := ReadyResponse{Status: "ready"}
	if len(h.optional) > 0 {
		resp.Checks = make(map[string]string, len(h.optional))
		for name, p := range h.optional {
			state := "ok"
			if err := p.Ping(ctx); err != nil {
				state = "unavailable"
			}
			resp.Checks[name] = state
		}
	}
	return c.JSON(http.StatusOK, resp)
}
