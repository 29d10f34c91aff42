// Package valuation estimates a property's market value from comparable DVF
// sales. Every function is a pure reduction over its arguments: the package
// keeps no state, so concurrent estimates never share an accumulator.
package valuation

import (
	"errors"
	"fmt"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// Error taxonomy. Invalid queries and thin comparable sets are ordinary
// "no estimate" outcomes; an unavailable data source is an infrastructure
// failure the caller may retry.
var (
	ErrInvalidQuery            = errors.New("invalid valuation query")
	ErrInsufficientComparables = errors.New("insufficient comparable sales")
	ErrDataSourceUnavailable   = errors.New("sales data source unavailable")
)

// Reason identifies why no estimate was produced.
type Reason string

// Rejection reasons.
const (
	ReasonInvalidSurface            Reason = "invalid_or_too_small_surface"
	ReasonInsufficientComparables   Reason = "insufficient_comparables"
	ReasonInsufficientAfterOutliers Reason = "insufficient_after_outlier_removal"
)

// RejectedError is returned when a query cannot produce an estimate.
type RejectedError struct {
	Reason Reason
	// Count is the number of comparables left when the gate tripped.
	Count int
}

func (e *RejectedError) Error() string {
	if e.Reason == ReasonInvalidSurface {
		return fmt.Sprintf("no estimate: %s", e.Reason)
	}
	return fmt.Sprintf("no estimate: %s (%d comparables)", e.Reason, e.Count)
}

// Unwrap maps the rejection onto its sentinel error.
func (e *RejectedError) Unwrap() error {
	if e.Reason == ReasonInvalidSurface {
		return ErrInvalidQuery
	}
	return ErrInsufficientComparables
}

// IsNoEstimate reports whether err is a business rejection rather than a failure.
func IsNoEstimate(err error) bool {
	return errors.Is(err, ErrInvalidQuery) || errors.Is(err, ErrInsufficientComparables)
}

// RejectionReason extracts the Reason from err, or "" if err is not a rejection.
func RejectionReason(err error) Reason {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

// Params holds the thresholds of the estimator. The sample floors and the
// outlier multiplier have no documented derivation; they are kept for
// behavioral compatibility and exposed for tuning.
type Params struct {
	MinSurfaceM2          float64
	MinRecordSurfaceM2    float64
	MinRecordPrice        float64
	MinCandidates         int
	MinAfterOutliers      int
	OutlierSigma          float64
	SurfaceBand           float64 // 0 disables the surface band filter
	ModifierClamp         float64
	TransactionCostFactor float64
}

// DefaultParams returns the production thresholds.
func DefaultParams() Params {
	return Params{
		MinSurfaceM2:          15,
		MinRecordSurfaceM2:    10,
		MinRecordPrice:        10000,
		MinCandidates:         5,
		MinAfterOutliers:      3,
		OutlierSigma:          1.5,
		SurfaceBand:           0,
		ModifierClamp:         0.05,
		TransactionCostFactor: 0.93,
	}
}

// Estimate selects comparables from corpus and adjusts the reference rate
// for q. It returns a *RejectedError when no estimate is possible.
func Estimate(
	corpus []domain.Sale,
	q *domain.ValuationQuery,
	p Params,
) (*domain.Valuation, error) {
	set, err := SelectComparables(corpus, q, p)
	if err != nil {
		return nil, err
	}

	v := Adjust(set, q, p)
	return &v, nil
}
