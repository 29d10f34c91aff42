package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/dvf-estimator/internal/api/handlers"
	"github.com/donaldgifford/dvf-estimator/internal/engine"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// mockEstimator is a test double for Estimator.
type mockEstimator struct {
	sub   *engine.Submission
	err   error
	query *domain.ValuationQuery
	lead  *domain.Lead
	calls int
}

func (m *mockEstimator) SubmitEstimate(
	_ context.Context,
	q *domain.ValuationQuery,
	lead *domain.Lead,
) (*engine.Submission, error) {
	m.calls++
	m.query = q
	m.lead = lead
	return m.sub, m.err
}

func estimateBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"postal_code":   "72000",
		"municipality":  "Le Mans",
		"property_kind": "maison",
		"surface_m2":    100,
		"condition":     "Bon état",
		"contact": map[string]any{
			"firstname": "Camille",
			"lastname":  "Martin",
			"email":     "camille.martin@example.fr",
			"phone":     "06 12 34 56 78",
		},
	}
	for k, v := range overrides {
		if v == nil {
			delete(body, k)
			continue
		}
		body[k] = v
	}
	return body
}

func newEstimateAPI(t *testing.T, m *mockEstimator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterEstimateRoutes(api, handlers.NewEstimateHandler(m))
	return api
}

func TestEstimate_Success(t *testing.T) {
	t.Parallel()

	m := &mockEstimator{sub: &engine.Submission{
		LeadID: "lead-1",
		Estimate: &domain.Valuation{
			EstimatedPrice:    186000,
			ComparableCount:   5,
			AveragePricePerM2: 2000,
		},
	}}
	api := newEstimateAPI(t, m)

	resp := api.Post("/api/v1/estimate", estimateBody(nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{
		"estimate": {"estimated_price": 186000, "comparable_count": 5, "average_price_per_m2": 2000},
		"lead_id": "lead-1"
	}`, resp.Body.String())

	require.Equal(t, 1, m.calls)
	assert.Equal(t, "72000", m.query.PostalCode)
	assert.Equal(t, domain.ConditionGood, m.query.Condition)
	require.NotNil(t, m.lead)
	assert.Equal(t, "Camille", m.lead.Firstname)
}

func TestEstimate_NoEstimate(t *testing.T) {
	t.Parallel()

	m := &mockEstimator{sub: &engine.Submission{
		LeadID: "lead-2",
		Reason: valuation.ReasonInsufficientComparables,
	}}
	api := newEstimateAPI(t, m)

	resp := api.Post("/api/v1/estimate", estimateBody(map[string]any{"contact": nil}))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"estimate": null, "reason": "insufficient_comparables"}`, resp.Body.String())
	assert.Nil(t, m.lead)
}

func TestEstimate_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]any
		wantInMsg string
	}{
		{
			name:      "four digit postal code",
			overrides: map[string]any{"postal_code": "7200"},
			wantInMsg: "body.postal_code",
		},
		{
			name:      "missing municipality",
			overrides: map[string]any{"municipality": nil},
			wantInMsg: "municipality",
		},
		{
			name: "invalid phone",
			overrides: map[string]any{"contact": map[string]any{
				"firstname": "Camille",
				"lastname":  "Martin",
				"email":     "camille.martin@example.fr",
				"phone":     "12345",
			}},
			wantInMsg: "body.contact.phone",
		},
		{
			name: "invalid email",
			overrides: map[string]any{"contact": map[string]any{
				"firstname": "Camille",
				"lastname":  "Martin",
				"email":     "not-an-email",
				"phone":     "+33612345678",
			}},
			wantInMsg: "body.contact.email",
		},
		{
			name:      "unknown condition label",
			overrides: map[string]any{"condition": "délabré"},
			wantInMsg: "body.condition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockEstimator{}
			api := newEstimateAPI(t, m)

			resp := api.Post("/api/v1/estimate", estimateBody(tt.overrides))
			require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantInMsg)
			assert.Zero(t, m.calls)
		})
	}
}

func TestEstimate_DataSourceUnavailable(t *testing.T) {
	t.Parallel()

	m := &mockEstimator{
		err: fmt.Errorf("%w: %w", valuation.ErrDataSourceUnavailable, context.DeadlineExceeded),
	}
	api := newEstimateAPI(t, m)

	resp := api.Post("/api/v1/estimate", estimateBody(nil))
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "temporarily unavailable")
}

func TestEstimate_UnexpectedError(t *testing.T) {
	t.Parallel()

	m := &mockEstimator{err: errors.New("boom")}
	api := newEstimateAPI(t, m)

	resp := api.Post("/api/v1/estimate", estimateBody(nil))
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "estimate failed")
}
