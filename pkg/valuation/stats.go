package valuation

import (
	"math"
	"slices"
)

// Median returns the middle value of values, or the mean of the two middle
// values for an even count. The input is not modified. Empty input yields 0.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// PopulationStdDev returns the population standard deviation (divide by N).
func PopulationStdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return math.Sqrt(sq / float64(n))
}
