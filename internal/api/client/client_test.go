package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.CorpusStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`internal`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CorpusStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500): internal")
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestClient_ProblemDetails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"title": "Unprocessable Entity",
			"status": 422,
			"detail": "validation failed",
			"errors": [{"location": "body.postal_code", "message": "must be a 5-digit postal code"}]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Estimate(context.Background(), &EstimateRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(err))
	assert.Contains(t, err.Error(), "validation failed; body.postal_code must be a 5-digit postal code")
}

func TestClient_Estimate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/estimate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "72000", body["postal_code"])
		assert.InDelta(t, 100.0, body["surface_m2"], 1e-9)
		assert.NotContains(t, body, "contact")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"estimate":{"estimated_price":186000,"comparable_count":5,"average_price_per_m2":2000}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Estimate(context.Background(), &EstimateRequest{
		ValuationQuery: domain.ValuationQuery{
			PostalCode:   "72000",
			Municipality: "Le Mans",
			PropertyKind: "maison",
			SurfaceM2:    100,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Estimate)
	assert.Equal(t, int64(186000), resp.Estimate.EstimatedPrice)
	assert.Empty(t, resp.Reason)
}

func TestClient_EstimateNoEstimate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"estimate":null,"reason":"insufficient_comparables"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Estimate(context.Background(), &EstimateRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp.Estimate)
	assert.Equal(t, "insufficient_comparables", resp.Reason)
}

func TestClient_ListSales(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sales", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "72000", q.Get("postal_code"))
		assert.Equal(t, "150000", q.Get("min_price"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Empty(t, q.Get("offset"))

		_, _ = w.Write([]byte(`{"sales":[{"code_postal":"72000","commune":"le mans","nature_mutation":"Vente","valeur_fonciere":"186000,00","type_local":"Maison","surface_reelle_bati":100}],"total":1,"limit":25,"offset":0}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).ListSales(context.Background(), &ListSalesParams{
		PostalCode: "72000",
		MinPrice:   150000,
		Limit:      25,
	})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 1)
	assert.InDelta(t, 186000.0, resp.Sales[0].Price.Value, 1e-9)
	assert.Equal(t, 1, resp.Total)
}

func TestClient_CorpusStats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/corpus/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_sales":1200,"postal_codes":14,"missing_price":3,"missing_surface":9}`))
	}))
	defer srv.Close()

	stats, err := New(srv.URL).CorpusStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1200, stats.TotalSales)
	assert.Equal(t, 9, stats.MissingSurface)
}

func TestClient_Imports(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/import":
			_, _ = w.Write([]byte(`{"run_id":"run-1","rows":1200,"datasets":[{"year":2024,"url":"u","stats":{"lines":5000,"kept":1200,"filtered":3800,"duplicates":0}}],"cache_keys_deleted":4,"duration":1500000000}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/imports":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`[{"id":"run-1","source":"dvf:2024","started_at":"2025-01-02T03:00:00Z","status":"succeeded"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	res, err := c.TriggerImport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, 5000, res.Datasets[0].Stats.Lines)
	assert.Equal(t, 4, res.CacheKeysDeleted)

	runs, err := c.ListImports(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.ImportSucceeded, runs[0].Status)
}
