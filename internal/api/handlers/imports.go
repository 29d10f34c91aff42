package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/dvf-estimator/internal/engine"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// Importer defines the interface for triggering a corpus import.
type Importer interface {
	RunImport(ctx context.Context) (*engine.ImportResult, error)
}

// ImportRunsProvider defines the store method required to list import runs.
type ImportRunsProvider interface {
	ListImportRuns(ctx context.Context, limit int) ([]domain.ImportRun, error)
}

// ImportHandler handles manual import triggers and import history.
type ImportHandler struct {
	importer Importer
	runs     ImportRunsProvider
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(imp Importer, runs ImportRunsProvider) *ImportHandler {
	return &ImportHandler{importer: imp, runs: runs}
}

// ImportOutput is the response body for the import endpoint.
type ImportOutput struct {
	Body engine.ImportResult
}

// ListImportsInput is the input for listing import runs.
type ListImportsInput struct {
	Limit int `query:"limit" doc:"Number of runs (default 20)" minimum:"1" maximum:"200"`
}

// ListImportsOutput is the response body for listing import runs.
type ListImportsOutput struct {
	Body []domain.ImportRun
}

const defaultImportHistoryLimit = 20

// Import rebuilds the corpus from the configured DVF datasets.
func (h *ImportHandler) Import(ctx context.Context, _ *struct{}) (*ImportOutput, error) {
	res, err := h.importer.RunImport(ctx)
	switch {
	case errors.Is(err, engine.ErrImportInProgress):
		return nil, huma.Error409Conflict(err.Error())
	case errors.Is(err, engine.ErrImportNotConfigured):
		return nil, huma.Error400BadRequest(err.Error())
	case err != nil:
		return nil, huma.Error500InternalServerError("import failed: " + err.Error())
	}

	return &ImportOutput{Body: *res}, nil
}

// ListImports returns the most recent import runs, newest first.
func (h *ImportHandler) ListImports(
	ctx context.Context,
	input *ListImportsInput,
) (*ListImportsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = defaultImportHistoryLimit
	}

	runs, err := h.runs.ListImportRuns(ctx, limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing imports failed: " + err.Error())
	}

	if runs == nil {
		runs = []domain.ImportRun{}
	}

	return &ListImportsOutput{Body: runs}, nil
}

// RegisterImportRoutes registers import endpoints with the Huma API.
func RegisterImportRoutes(api huma.API, h *ImportHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-import",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Trigger a corpus import",
		Description: "Downloads the configured DVF datasets, replaces the corpus " +
			"and flushes the candidate cache.",
		Tags:   []string{"import"},
		Errors: []int{http.StatusBadRequest, http.StatusConflict, http.StatusInternalServerError},
	}, h.Import)

	huma.Register(api, huma.Operation{
		OperationID: "list-imports",
		Method:      http.MethodGet,
		Path:        "/api/v1/imports",
		Summary:     "List import runs",
		Description: "Returns the import run history (newest first).",
		Tags:        []string{"import"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListImports)
}
