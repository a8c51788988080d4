package domain

import (
	"math"
	"slices"
)

// Eps is the tolerance for generic floating-point equality, e.g. request
// preferences.
const Eps = 1e-6

// EpsRsrc is the tolerance for resource quantity comparisons: buffer
// capacity checks and quantity bookkeeping.
const EpsRsrc = 1e-6

// DoubleEq reports whether a and b differ by less than Eps.
func DoubleEq(a, b float64) bool {
	return math.Abs(a-b) < Eps
}

// StableSum returns the compensated sum of vals. The input is sorted by
// ascending magnitude first so the result does not depend on the order of
// vals, then accumulated with the Kahan-Babuska (Neumaier) scheme, which
// keeps the error bounded independent of n. vals is not modified.
func StableSum(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := slices.Clone(vals)
	slices.SortFunc(sorted, func(a, b float64) int {
		aa, ab := math.Abs(a), math.Abs(b)
		switch {
		case aa < ab:
			return -1
		case aa > ab:
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	})

	var sum, c float64
	for _, v := range sorted {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}
	return sum + c
}
