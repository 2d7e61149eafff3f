package precision

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3.5}, 3.5},
		{"uniform", []float64{2, 2, 2, 2}, 2},
		{"mixed signs", []float64{-1, 0, 1}, 0},
		{"fractional", []float64{0.1, 0.2, 0.3}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat64(Mean(tt.values))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single value", []float64{7}, 0},
		{"constant series", []float64{4, 4, 4}, 0},
		{"known sample", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 32.0 / 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat64(Variance(tt.values))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Variance(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestCancellationResistance(t *testing.T) {
	// Values that differ from their mean by amounts float64 accumulation
	// mangles. The variance of {1e8 + d} equals the variance of {d}.
	values := []float64{1e8 + 1e-4, 1e8 + 2e-4, 1e8 + 3e-4}
	shifted := []float64{1e-4, 2e-4, 3e-4}

	got := ToFloat64(Variance(values))
	want := ToFloat64(Variance(shifted))
	if math.Abs(got-want) > 1e-18 {
		t.Errorf("Variance under offset = %v, want %v", got, want)
	}
}

func TestMagnitude(t *testing.T) {
	got := ToFloat64(Magnitude([]float64{3, 4}))
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("Magnitude([3 4]) = %v, want 5", got)
	}
	if ToFloat64(Magnitude(nil)) != 0 {
		t.Errorf("Magnitude(nil) should be 0")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		want    float64
		wantErr bool
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1, false},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0, false},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1, false},
		{"zero operand", []float64{0, 0}, []float64{1, 1}, 0, false},
		{"dimension mismatch", []float64{1}, []float64{1, 2}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := CosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ToFloat64(sim); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinearRegressionRecovery(t *testing.T) {
	// y = -0.3x + 2 must be recovered to high precision.
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = -0.3*xi + 2
	}

	fit := LinearRegression(x, y)
	if math.Abs(fit.Slope+0.3) > 1e-6 {
		t.Errorf("Slope = %v, want -0.3", fit.Slope)
	}
	if math.Abs(fit.Intercept-2) > 1e-6 {
		t.Errorf("Intercept = %v, want 2", fit.Intercept)
	}
	if math.Abs(fit.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", fit.R2)
	}
}

func TestLinearRegressionDegenerate(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"too few points", []float64{1}, []float64{1}},
		{"mismatched input", []float64{1, 2}, []float64{1}},
		{"constant x", []float64{2, 2, 2}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := LinearRegression(tt.x, tt.y)
			if fit.Slope != 0 || fit.Intercept != 0 || fit.R2 != 0 {
				t.Errorf("expected zero result, got %+v", fit)
			}
		})
	}
}

func TestLinearRegressionConstantY(t *testing.T) {
	fit := LinearRegression([]float64{1, 2, 3}, []float64{5, 5, 5})
	if fit.Slope != 0 {
		t.Errorf("Slope = %v, want 0", fit.Slope)
	}
	if fit.R2 != 1 {
		t.Errorf("R2 = %v, want 1 for constant y", fit.R2)
	}
}

func TestFromStringExactThreshold(t *testing.T) {
	// 1e-15 parsed decimally must compare exactly against itself and
	// strictly above a value one ulp-of-decimal under it.
	threshold := MustFromString("1e-15")
	below := MustFromString("9.99e-16")
	if threshold.Cmp(threshold) != 0 {
		t.Error("threshold should equal itself")
	}
	if below.Cmp(threshold) >= 0 {
		t.Error("9.99e-16 should compare below 1e-15")
	}
}

func TestToFloat64Nil(t *testing.T) {
	if !math.IsNaN(ToFloat64(nil)) {
		t.Error("ToFloat64(nil) should be NaN")
	}
}
