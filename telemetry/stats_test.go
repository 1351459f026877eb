package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"minimum", 0, 1},
		{"maximum", 1, 10},
		{"median", 0.5, 5.5},
		{"p90", 0.9, 9.1},
		{"below range", -0.1, 1},
		{"above range", 1.5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("empty percentile = %v, want 0", got)
	}
}

func TestPercentileSingle(t *testing.T) {
	single := []float64{7}
	for _, p := range []float64{0, 0.5, 0.9, 1} {
		if got := Percentile(single, p); got != 7 {
			t.Errorf("Percentile(%v) on single value = %v, want 7", p, got)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("empty mean = %v, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("mean = %v, want 4", got)
	}
}

func TestComputeAgeStats(t *testing.T) {
	// Unsorted input must not matter, and the input must not be mutated.
	values := []float64{30, 10, 20, 40, 50}
	mean, p50, p90 := ComputeAgeStats(values)

	if mean != 30 {
		t.Errorf("mean = %v, want 30", mean)
	}
	if p50 != 30 {
		t.Errorf("p50 = %v, want 30", p50)
	}
	if math.Abs(p90-46) > 1e-9 {
		t.Errorf("p90 = %v, want 46", p90)
	}
	if values[0] != 30 || values[4] != 50 {
		t.Error("input slice was reordered")
	}
}

func TestComputeAgeStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeAgeStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("empty stats = %v, %v, %v, want zeros", mean, p50, p90)
	}
}
