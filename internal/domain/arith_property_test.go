package domain

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

// Property 1: Stable summation is order independent
// Validates: compensated aggregate quantity accounting

func TestProperty_StableSumOrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vals := rapid.SliceOfN(rapid.Float64Range(0, 1e6), 0, 200).Draw(t, "vals")
		perm := rapid.Permutation(vals).Draw(t, "perm")

		a := StableSum(vals)
		b := StableSum(perm)
		if a != b {
			t.Fatalf("StableSum differs under permutation: %v vs %v", a, b)
		}
	})
}

func TestProperty_StableSumMatchesExactForSmallIncrements(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5000).Draw(t, "n")
		// Multiples of 1/1024 are exactly representable, so n*step is exact.
		step := float64(rapid.IntRange(1, 64).Draw(t, "step")) / 1024.0

		vals := make([]float64, n)
		for i := range vals {
			vals[i] = step
		}
		want := float64(n) * step
		if got := StableSum(vals); math.Abs(got-want) > EpsRsrc {
			t.Fatalf("StableSum = %v, want %v", got, want)
		}
	})
}
