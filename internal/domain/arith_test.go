package domain

import (
	"math"
	"testing"
)

func TestDoubleEq(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{"identical", 1.0, 1.0, true},
		{"within eps", 1.0, 1.0 + Eps/2, true},
		{"beyond eps", 1.0, 1.0 + 2*Eps, false},
		{"negative within eps", -3.5, -3.5 - Eps/4, true},
		{"zero and tiny", 0, 1e-9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DoubleEq(tt.a, tt.b); got != tt.want {
				t.Errorf("DoubleEq(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStableSum(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  float64
	}{
		{"nil", nil, 0},
		{"empty", []float64{}, 0},
		{"single", []float64{150051.0}, 150051.0},
		{"integers", []float64{1, 2, 3, 4}, 10},
		{"mixed signs", []float64{5, -2.5, 7.5}, 10},
		{"cancellation", []float64{1e16, 1, -1e16}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StableSum(tt.input); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("StableSum(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStableSum_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = StableSum(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("StableSum reordered its input: %v", in)
	}
}

func TestStableSum_ManySmallValues(t *testing.T) {
	// A million additions of 0.1 drift by ~1e-6 with naive summation,
	// which is the size of the capacity tolerance.
	const n = 1_000_000
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 0.1
	}

	got := StableSum(vals)
	if math.Abs(got-100000.0) > 1e-9 {
		t.Errorf("StableSum of %d x 0.1 = %.12f, want 100000", n, got)
	}
}
