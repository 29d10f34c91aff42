package client

import (
	"context"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// EstimateRequest is the estimate form payload.
type EstimateRequest struct {
	domain.ValuationQuery
	Contact *domain.Lead `json:"contact,omitempty"`
}

// EstimateResponse is the estimate outcome. Estimate is nil when no
// estimate could be produced and Reason says why.
type EstimateResponse struct {
	Estimate *domain.Valuation `json:"estimate"`
	Reason   string            `json:"reason,omitempty"`
	LeadID   string            `json:"lead_id,omitempty"`
}

// Estimate requests a valuation for the given property.
func (c *Client) Estimate(ctx context.Context, req *EstimateRequest) (*EstimateResponse, error) {
	var resp EstimateResponse
	if err := c.post(ctx, "/api/v1/estimate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
