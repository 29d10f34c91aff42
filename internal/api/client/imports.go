package client

import (
	"context"
	"strconv"
	"time"

	"github.com/donaldgifford/dvf-estimator/internal/dvf"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// DatasetResult reports how one dataset was parsed during an import.
type DatasetResult struct {
	Year  int            `json:"year"`
	URL   string         `json:"url"`
	Stats dvf.ParseStats `json:"stats"`
}

// ImportResult summarizes a completed corpus import.
type ImportResult struct {
	RunID            string          `json:"run_id"`
	Rows             int             `json:"rows"`
	Datasets         []DatasetResult `json:"datasets"`
	CacheKeysDeleted int             `json:"cache_keys_deleted"`
	Duration         time.Duration   `json:"duration"`
}

// TriggerImport rebuilds the corpus from the configured datasets. It blocks
// until the import finishes.
func (c *Client) TriggerImport(ctx context.Context) (*ImportResult, error) {
	var res ImportResult
	if err := c.post(ctx, "/api/v1/import", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListImports returns recent import runs, newest first.
func (c *Client) ListImports(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	path := "/api/v1/imports"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var runs []domain.ImportRun
	if err := c.get(ctx, path, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
