package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dvf-estimator/internal/store"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// SalesProvider defines the store methods required by the sales handler.
type SalesProvider interface {
	ListSales(ctx context.Context, q *store.SaleQuery) ([]domain.Sale, int, error)
	GetCorpusStats(ctx context.Context) (*domain.CorpusStats, error)
}

// SalesHandler handles corpus browsing endpoints.
type SalesHandler struct {
	store SalesProvider
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(s SalesProvider) *SalesHandler {
	return &SalesHandler{store: s}
}

// --- Input/Output types ---

// ListSalesInput is the input for listing sales with optional filters.
type ListSalesInput struct {
	PostalCode   string  `query:"postal_code"   doc:"Filter by postal code"        pattern:"^[0-9]{5}$"`
	Municipality string  `query:"municipality"  doc:"Filter by municipality"`
	PropertyKind string  `query:"property_kind" doc:"Filter by property kind"`
	MinPrice     float64 `query:"min_price"     doc:"Minimum sale price in EUR"    minimum:"0"`
	MaxPrice     float64 `query:"max_price"     doc:"Maximum sale price in EUR"    minimum:"0"`
	Since        string  `query:"since"         doc:"Earliest mutation date"       format:"date"`
	Limit        int     `query:"limit"         doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset       int     `query:"offset"        doc:"Pagination offset"            minimum:"0"`
	OrderBy      string  `query:"order_by"      doc:"Sort field"                   enum:"date,price,price_per_m2,"`
}

// ListSalesOutput is the response for listing sales.
type ListSalesOutput struct {
	Body struct {
		Sales  []domain.Sale `json:"sales"`
		Total  int           `json:"total"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
	}
}

// CorpusStatsOutput is the response for the corpus stats endpoint.
type CorpusStatsOutput struct {
	Body domain.CorpusStats
}

const defaultSalesLimit = 50

// --- Handlers ---

// ListSales returns corpus sales with optional filters and pagination.
func (h *SalesHandler) ListSales(
	ctx context.Context,
	input *ListSalesInput,
) (*ListSalesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultSalesLimit
	}

	q := &store.SaleQuery{
		Limit:   limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.PostalCode != "" {
		q.PostalCode = &input.PostalCode
	}

	if input.Municipality != "" {
		m := valuation.NormalizeMunicipality(input.Municipality)
		q.Municipality = &m
	}

	if input.PropertyKind != "" {
		q.PropertyKind = &input.PropertyKind
	}

	if input.MinPrice != 0 {
		q.MinPrice = &input.MinPrice
	}

	if input.MaxPrice != 0 {
		q.MaxPrice = &input.MaxPrice
	}

	if input.Since != "" {
		since, err := time.Parse(time.DateOnly, input.Since)
		if err != nil {
			return nil, huma.Error400BadRequest("since must be a YYYY-MM-DD date")
		}
		q.Since = &since
	}

	sales, total, err := h.store.ListSales(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("sales query failed: " + err.Error())
	}

	if sales == nil {
		sales = []domain.Sale{}
	}

	resp := &ListSalesOutput{}
	resp.Body.Sales = sales
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// CorpusStats returns aggregate figures about the loaded corpus.
func (h *SalesHandler) CorpusStats(
	ctx context.Context,
	_ *struct{},
) (*CorpusStatsOutput, error) {
	stats, err := h.store.GetCorpusStats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("corpus stats failed: " + err.Error())
	}

	return &CorpusStatsOutput{Body: *stats}, nil
}

// RegisterSalesRoutes registers corpus endpoints with the Huma API.
func RegisterSalesRoutes(api huma.API, h *SalesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-sales",
		Method:      http.MethodGet,
		Path:        "/api/v1/sales",
		Summary:     "List sales",
		Description: "Returns DVF sales from the corpus with optional filters and pagination.",
		Tags:        []string{"corpus"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ListSales)

	huma.Register(api, huma.Operation{
		OperationID: "get-corpus-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/corpus/stats",
		Summary:     "Get corpus statistics",
		Description: "Returns sale counts, postal code coverage and the mutation date range.",
		Tags:        []string{"corpus"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.CorpusStats)
}
