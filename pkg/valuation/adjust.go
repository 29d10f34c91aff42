package valuation

import (
	"math"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// Qualitative modifier weights, summed then clamped by Params.ModifierClamp.
const (
	likeNewModifier    = 0.01
	majorWorkModifier  = -0.03
	poolModifier       = 0.01
	noSewerModifier    = -0.01
	veryBrightModifier = 0.01
	veryNoisyModifier  = -0.02
)

// Flat bonuses in EUR, applied outside the modifier clamp.
const (
	parkingBonusEUR     = 4000
	outbuildingBonusEUR = 3000
	bonusCap            = 2
	landRateFactor      = 0.03
)

// Modifier returns the clamped multiplicative adjustment for the qualitative
// attributes of q. Unset attributes contribute nothing.
func Modifier(q *domain.ValuationQuery, p Params) float64 {
	var m float64

	switch q.Condition {
	case domain.ConditionLikeNew:
		m += likeNewModifier
	case domain.ConditionMajorWork:
		m += majorWorkModifier
	}

	if q.Pool {
		m += poolModifier
	}
	if q.Sewer != nil && !*q.Sewer {
		m += noSewerModifier
	}
	if q.Brightness == domain.BrightnessVeryBright {
		m += veryBrightModifier
	}
	if q.Noise == domain.NoiseVeryNoisy {
		m += veryNoisyModifier
	}

	return math.Max(-p.ModifierClamp, math.Min(p.ModifierClamp, m))
}

// Adjust turns a comparable set into a final valuation for q. The order of
// operations is fixed: modifier, flat bonuses, land surplus, then the
// transaction cost deduction over the whole running estimate.
func Adjust(set *ComparableSet, q *domain.ValuationQuery, p Params) domain.Valuation {
	rate := set.ReferenceRate

	estimate := rate * q.SurfaceM2
	estimate *= 1 + Modifier(q, p)

	estimate += float64(capCount(q.ParkingSpots)) * parkingBonusEUR
	estimate += float64(capCount(q.Outbuildings)) * outbuildingBonusEUR

	if q.TotalLandSurfaceM2 != nil && *q.TotalLandSurfaceM2 > q.SurfaceM2 {
		estimate += (*q.TotalLandSurfaceM2 - q.SurfaceM2) * rate * landRateFactor
	}

	estimate *= p.TransactionCostFactor

	return domain.Valuation{
		EstimatedPrice:    int64(math.Round(estimate)),
		ComparableCount:   len(set.Comparables),
		AveragePricePerM2: int64(math.Round(rate)),
	}
}

func capCount(n *int) int {
	if n == nil || *n <= 0 {
		return 0
	}
	return min(*n, bonusCap)
}
