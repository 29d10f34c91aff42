package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecoveryContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, rec := newRecoveryContext(http.MethodGet, "/api/v1/sales")
	handler := Recovery(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, buf.String())
}

func TestRecovery_PanicWritesProblem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, rec := newRecoveryContext(http.MethodPost, "/api/v1/estimate")
	c.Set(RequestIDKey, "req-7f3a")

	handler := Recovery(logger)(func(_ echo.Context) error {
		panic("nil comparable set")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get(echo.HeaderContentType))

	var problem struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Internal Server Error", problem.Title)
	assert.Equal(t, http.StatusInternalServerError, problem.Status)
	assert.Equal(t, "internal server error", problem.Detail)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "panic recovered")
	assert.Contains(t, logOutput, "nil comparable set")
	assert.Contains(t, logOutput, "method=POST")
	assert.Contains(t, logOutput, "path=/api/v1/estimate")
	assert.Contains(t, logOutput, "request_id=req-7f3a")
	assert.Contains(t, logOutput, "stack=")
}

func TestRecovery_PanicNonString(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, rec := newRecoveryContext(http.MethodGet, "/api/v1/corpus/stats")
	handler := Recovery(logger)(func(_ echo.Context) error {
		panic(42)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "error=42")
}

func TestRecovery_CommittedResponseIsLeftAlone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, rec := newRecoveryContext(http.MethodGet, "/api/v1/imports")
	handler := Recovery(logger)(func(c echo.Context) error {
		c.Response().WriteHeader(http.StatusOK)
		_, _ = c.Response().Write([]byte(`[{"id":"run-1"`))
		panic("encoder failed mid-stream")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"id":"run-1"`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, buf.String(), "encoder failed mid-stream")
}
