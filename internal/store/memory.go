package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// MemoryStore implements Store over an in-process corpus, typically loaded
// once from a flattened JSON extract. Reads share a lock so estimates never
// contend with each other; ReplaceSales swaps the corpus atomically.
type MemoryStore struct {
	mu         sync.RWMutex
	sales      []domain.Sale
	byPostcode map[string][]int

	runsMu     sync.Mutex
	runs       []domain.ImportRun
	lockHolder string
	lockExpiry time.Time

	now func() time.Time
}

// NewMemoryStore creates a MemoryStore holding sales.
func NewMemoryStore(sales []domain.Sale) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	s.load(slices.Clone(sales))
	return s
}

func (s *MemoryStore) load(sales []domain.Sale) {
	idx := make(map[string][]int)
	for i := range sales {
		if sales[i].ID == 0 {
			sales[i].ID = int64(i + 1)
		}
		pc := sales[i].PostalCode
		idx[pc] = append(idx[pc], i)
	}
	s.sales = sales
	s.byPostcode = idx
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Migrate is a no-op.
func (s *MemoryStore) Migrate(context.Context) error { return nil }

// FindCandidateSales returns the sales for the postal code whose property
// kind matches case-insensitively, ignoring surrounding whitespace.
func (s *MemoryStore) FindCandidateSales(
	ctx context.Context,
	postalCode, propertyKind string,
) ([]domain.Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	kind := strings.TrimSpace(propertyKind)
	var out []domain.Sale
	for _, i := range s.byPostcode[postalCode] {
		if strings.EqualFold(strings.TrimSpace(s.sales[i].PropertyKind), kind) {
			out = append(out, s.sales[i])
		}
	}
	return out, nil
}

// ReplaceSales swaps the corpus for a copy of sales.
func (s *MemoryStore) ReplaceSales(ctx context.Context, sales []domain.Sale) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cp := slices.Clone(sales)
	for i := range cp {
		cp[i].ID = 0
	}

	s.mu.Lock()
	s.load(cp)
	s.mu.Unlock()

	return len(cp), nil
}

// ListSales applies q to the corpus, returning one page and the total count.
func (s *MemoryStore) ListSales(ctx context.Context, q *SaleQuery) ([]domain.Sale, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	var matched []domain.Sale
	for i := range s.sales {
		if q.Matches(&s.sales[i]) {
			matched = append(matched, s.sales[i])
		}
	}
	s.mu.RUnlock()

	sortSales(matched, q.OrderBy)

	total := len(matched)
	limit, offset := q.page()
	if offset >= total {
		return []domain.Sale{}, total, nil
	}
	end := min(offset+limit, total)

	return matched[offset:end], total, nil
}

// sortSales orders sales like the SQL ORDER BY clauses: descending on the
// key with missing values last, then by ID.
func sortSales(sales []domain.Sale, orderBy string) {
	key := func(s *domain.Sale) (float64, bool) {
		switch orderBy {
		case orderByPrice:
			return s.Price.Value, s.Price.Valid
		case orderByRate:
			r := s.PricePerM2()
			return r, r > 0
		default:
			if s.MutationDate == nil {
				return 0, false
			}
			return float64(s.MutationDate.Unix()), true
		}
	}

	slices.SortStableFunc(sales, func(a, b domain.Sale) int {
		ka, okA := key(&a)
		kb, okB := key(&b)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case okA && okB && ka != kb:
			return cmp.Compare(kb, ka)
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// GetCorpusStats computes the data quality summary of the corpus.
func (s *MemoryStore) GetCorpusStats(ctx context.Context) (*domain.CorpusStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &domain.CorpusStats{TotalSales: len(s.sales), PostalCodes: len(s.byPostcode)}
	for i := range s.sales {
		sale := &s.sales[i]
		if !sale.Price.Valid {
			st.MissingPrice++
		}
		if !sale.BuiltSurface.Valid {
			st.MissingSurface++
		}
		if d := sale.MutationDate; d != nil {
			if st.FirstMutation == nil || d.Before(*st.FirstMutation) {
				st.FirstMutation = d
			}
			if st.LastMutation == nil || d.After(*st.LastMutation) {
				st.LastMutation = d
			}
		}
	}
	return st, nil
}

// InsertImportRun records the start of an import.
func (s *MemoryStore) InsertImportRun(_ context.Context, source string) (string, error) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	id := uuid.NewString()
	s.runs = append(s.runs, domain.ImportRun{
		ID:        id,
		Source:    source,
		StartedAt: s.now(),
		Status:    domain.ImportRunning,
	})
	return id, nil
}

// CompleteImportRun marks an import run as finished.
func (s *MemoryStore) CompleteImportRun(
	_ context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	for i := range s.runs {
		if s.runs[i].ID != id {
			continue
		}
		now := s.now()
		n := rowsAffected
		s.runs[i].CompletedAt = &now
		s.runs[i].Status = status
		s.runs[i].ErrorText = errText
		s.runs[i].RowsAffected = &n
		return nil
	}
	return fmt.Errorf("completing import run %s: %w", id, ErrNotFound)
}

// ListImportRuns returns the most recent import runs, newest first.
func (s *MemoryStore) ListImportRuns(_ context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	out := make([]domain.ImportRun, 0, min(limit, len(s.runs)))
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// RecoverStaleImportRuns marks 'running' imports older than olderThan as failed.
func (s *MemoryStore) RecoverStaleImportRuns(_ context.Context, olderThan time.Duration) (int, error) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	now := s.now()
	cutoff := now.Add(-olderThan)
	var n int
	for i := range s.runs {
		r := &s.runs[i]
		if r.Status == domain.ImportRunning && r.StartedAt.Before(cutoff) {
			r.Status = domain.ImportFailed
			r.ErrorText = "interrupted"
			r.CompletedAt = &now
			n++
		}
	}
	return n, nil
}

// AcquireImportLock takes the import lock for holder unless another holder
// owns an unexpired lock.
func (s *MemoryStore) AcquireImportLock(_ context.Context, holder string, ttl time.Duration) (bool, error) {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	now := s.now()
	if s.lockHolder != "" && s.lockHolder != holder && now.Before(s.lockExpiry) {
		return false, nil
	}
	s.lockHolder = holder
	s.lockExpiry = now.Add(ttl)
	return true, nil
}

// ReleaseImportLock releases the import lock if holder owns it.
func (s *MemoryStore) ReleaseImportLock(_ context.Context, holder string) error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	if s.lockHolder == holder {
		s.lockHolder = ""
		s.lockExpiry = time.Time{}
	}
	return nil
}
