package valuation

import (
	"math"
	"strings"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// Comparable is a sale reduced to the values the estimator uses.
type Comparable struct {
	SurfaceM2  float64 `json:"surface_m2"`
	Price      float64 `json:"price"`
	PricePerM2 float64 `json:"price_per_m2"`
}

// ComparableSet is the outcome of comparable selection.
type ComparableSet struct {
	// Comparables survived the outlier filter.
	Comparables []Comparable
	// ReferenceRate is the median price per m2 of Comparables.
	ReferenceRate float64
	// CandidateCount is the number of matches before outlier removal.
	CandidateCount int
	// CandidateMedian and CandidateStdDev describe the pre-filter series.
	CandidateMedian float64
	CandidateStdDev float64
}

// ValidateQuery applies the business thresholds on the query itself.
func ValidateQuery(q *domain.ValuationQuery, p Params) error {
	s := q.SurfaceM2
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 || s < p.MinSurfaceM2 {
		return &RejectedError{Reason: ReasonInvalidSurface}
	}
	return nil
}

// SelectComparables filters corpus down to valid sales matching q, removes
// price-per-m2 outliers around the median and returns the survivors with
// their median rate.
func SelectComparables(
	corpus []domain.Sale,
	q *domain.ValuationQuery,
	p Params,
) (*ComparableSet, error) {
	if err := ValidateQuery(q, p); err != nil {
		return nil, err
	}

	candidates := Candidates(corpus, q, p)
	if len(candidates) < p.MinCandidates {
		return nil, &RejectedError{
			Reason: ReasonInsufficientComparables,
			Count:  len(candidates),
		}
	}

	kept, median, sd := RemoveOutliers(candidates, p.OutlierSigma)
	if len(kept) < p.MinAfterOutliers {
		return nil, &RejectedError{
			Reason: ReasonInsufficientAfterOutliers,
			Count:  len(kept),
		}
	}

	return &ComparableSet{
		Comparables:     kept,
		ReferenceRate:   Median(rates(kept)),
		CandidateCount:  len(candidates),
		CandidateMedian: median,
		CandidateStdDev: sd,
	}, nil
}

// Candidates returns the sales of corpus that match q on nature, postal code,
// kind and commune and carry a usable surface and price. Malformed rows are
// skipped, never reported.
func Candidates(corpus []domain.Sale, q *domain.ValuationQuery, p Params) []Comparable {
	postalCode := strings.TrimSpace(q.PostalCode)
	kind := NormalizeKind(q.PropertyKind)
	municipality := NormalizeMunicipality(q.Municipality)

	minBand, maxBand := 0.0, math.Inf(1)
	if p.SurfaceBand > 0 {
		minBand = q.SurfaceM2 * (1 - p.SurfaceBand)
		maxBand = q.SurfaceM2 * (1 + p.SurfaceBand)
	}

	var out []Comparable
	for i := range corpus {
		s := &corpus[i]

		if NormalizeKind(s.Nature) != domain.NatureSale ||
			s.PostalCode != postalCode ||
			NormalizeKind(s.PropertyKind) != kind ||
			NormalizeMunicipality(s.Municipality) != municipality {
			continue
		}

		if !s.BuiltSurface.Valid || !s.Price.Valid {
			continue
		}

		surface, price := s.BuiltSurface.Value, s.Price.Value
		if surface <= p.MinRecordSurfaceM2 || price <= p.MinRecordPrice {
			continue
		}
		if surface < minBand || surface > maxBand {
			continue
		}

		out = append(out, Comparable{
			SurfaceM2:  surface,
			Price:      price,
			PricePerM2: price / surface,
		})
	}

	return out
}

// RemoveOutliers keeps the comparables whose price per m2 lies strictly
// within sigma population standard deviations of the median. A series with
// zero spread has no outliers and is returned whole.
func RemoveOutliers(cs []Comparable, sigma float64) (kept []Comparable, median, sd float64) {
	series := rates(cs)
	median = Median(series)
	sd = PopulationStdDev(series)

	if sd == 0 {
		return cs, median, sd
	}

	limit := sigma * sd
	kept = make([]Comparable, 0, len(cs))
	for _, c := range cs {
		if math.Abs(c.PricePerM2-median) < limit {
			kept = append(kept, c)
		}
	}

	return kept, median, sd
}

func rates(cs []Comparable) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.PricePerM2
	}
	return out
}
