package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// SalesResponse wraps a paginated sales response.
type SalesResponse struct {
	Sales  []domain.Sale `json:"sales"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListSalesParams defines query parameters for sale queries.
type ListSalesParams struct {
	PostalCode   string
	Municipality string
	PropertyKind string
	MinPrice     float64
	MaxPrice     float64
	Since        string // YYYY-MM-DD
	Limit        int
	Offset       int
	OrderBy      string
}

// ListSales returns corpus sales matching the given parameters.
func (c *Client) ListSales(
	ctx context.Context,
	params *ListSalesParams,
) (*SalesResponse, error) {
	q := url.Values{}
	if params.PostalCode != "" {
		q.Set("postal_code", params.PostalCode)
	}
	if params.Municipality != "" {
		q.Set("municipality", params.Municipality)
	}
	if params.PropertyKind != "" {
		q.Set("property_kind", params.PropertyKind)
	}
	if params.MinPrice > 0 {
		q.Set("min_price", strconv.FormatFloat(params.MinPrice, 'f', -1, 64))
	}
	if params.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(params.MaxPrice, 'f', -1, 64))
	}
	if params.Since != "" {
		q.Set("since", params.Since)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/sales"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp SalesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CorpusStats returns aggregate figures about the loaded corpus.
func (c *Client) CorpusStats(ctx context.Context) (*domain.CorpusStats, error) {
	var stats domain.CorpusStats
	if err := c.get(ctx, "/api/v1/corpus/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
