package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dvf-estimator/internal/engine"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// Estimator computes estimates and records the leads submitted with them.
type Estimator interface {
	SubmitEstimate(ctx context.Context, q *domain.ValuationQuery, lead *domain.Lead) (*engine.Submission, error)
}

// EstimateHandler serves the estimate form endpoint.
type EstimateHandler struct {
	estimator Estimator
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(e Estimator) *EstimateHandler {
	return &EstimateHandler{estimator: e}
}

// EstimateRequest is the form payload: the property plus optional contact
// details. Qualitative fields accept the slugs or the French form labels.
type EstimateRequest struct {
	domain.ValuationQuery
	Contact *domain.Lead `json:"contact,omitempty" doc:"Contact details; when present the lead is forwarded to the agency"`
}

// EstimateInput is the request for the estimate endpoint.
type EstimateInput struct {
	Body EstimateRequest
}

// EstimateOutput is the response for the estimate endpoint. Estimate is null
// when no estimate could be produced; Reason then says why.
type EstimateOutput struct {
	Body struct {
		Estimate *domain.Valuation `json:"estimate"           doc:"Estimated value, null when none could be produced"`
		Reason   string            `json:"reason,omitempty"   doc:"Why no estimate was produced" example:"insufficient_comparables"`
		LeadID   string            `json:"lead_id,omitempty"  doc:"Identifier of the forwarded lead"`
	}
}

// Estimate validates the form, computes the estimate and forwards the lead.
func (h *EstimateHandler) Estimate(ctx context.Context, input *EstimateInput) (*EstimateOutput, error) {
	q := input.Body.ValuationQuery
	if err := validate.Struct(&q); err != nil {
		return nil, validationError("", err)
	}
	if err := normalizeTiers(&q); err != nil {
		return nil, err
	}

	lead := input.Body.Contact
	if lead != nil {
		if err := validate.Struct(lead); err != nil {
			return nil, validationError("contact.", err)
		}
	}

	sub, err := h.estimator.SubmitEstimate(ctx, &q, lead)
	if err != nil {
		if errors.Is(err, valuation.ErrDataSourceUnavailable) {
			return nil, huma.Error503ServiceUnavailable("sales data temporarily unavailable, retry later")
		}
		return nil, huma.Error500InternalServerError("estimate failed: " + err.Error())
	}

	resp := &EstimateOutput{}
	resp.Body.Estimate = sub.Estimate
	resp.Body.Reason = string(sub.Reason)
	if lead != nil {
		resp.Body.LeadID = sub.LeadID
	}
	return resp, nil
}

// normalizeTiers maps form labels to the tier slugs the engine expects.
// Empty values stay unknown; unrecognized values are rejected.
func normalizeTiers(q *domain.ValuationQuery) error {
	var details []error
	invalid := func(field, value string) {
		details = append(details, &huma.ErrorDetail{
			Location: "body." + field,
			Message:  "unknown value",
			Value:    value,
		})
	}

	if q.Condition != "" {
		c, ok := valuation.ParseCondition(string(q.Condition))
		if !ok {
			invalid("condition", string(q.Condition))
		}
		q.Condition = c
	}
	if q.Brightness != "" {
		b, ok := valuation.ParseBrightness(string(q.Brightness))
		if !ok {
			invalid("brightness", string(q.Brightness))
		}
		q.Brightness = b
	}
	if q.Noise != "" {
		n, ok := valuation.ParseNoise(string(q.Noise))
		if !ok {
			invalid("noise", string(q.Noise))
		}
		q.Noise = n
	}

	if len(details) > 0 {
		return huma.Error422UnprocessableEntity("validation failed", details...)
	}
	return nil
}

// RegisterEstimateRoutes registers the estimate endpoint with the Huma API.
func RegisterEstimateRoutes(api huma.API, h *EstimateHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "create-estimate",
		Method:      http.MethodPost,
		Path:        "/api/v1/estimate",
		Summary:     "Estimate a property",
		Description: "Values a property from comparable DVF sales in the same municipality. " +
			"Returns estimate null with a reason when no estimate can be produced.",
		Tags:   []string{"estimate"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusTooManyRequests, http.StatusServiceUnavailable},
	}, h.Estimate)
}
