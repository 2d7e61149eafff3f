package diagnostics

import (
	"math"
	"testing"

	"github.com/coherencelab/glotta/internal/models"
)

// vec builds a unit-ish test vector with one dominant component.
func vec(dim, hot int, scale float32) []float32 {
	v := make([]float32, dim)
	v[hot%dim] = scale
	return v
}

func TestValidateClassifiesNorms(t *testing.T) {
	vectors := [][]float32{
		vec(4, 0, 1.0),   // valid
		vec(4, 1, 0.005), // degenerate, below 0.01 floor
		vec(4, 2, 0),     // zero
		vec(4, 3, 2.0),   // valid
	}

	d := Validate(vectors)
	if d.TotalVectors != 4 {
		t.Errorf("TotalVectors = %d, want 4", d.TotalVectors)
	}
	if d.ValidVectors != 2 {
		t.Errorf("ValidVectors = %d, want 2", d.ValidVectors)
	}
	if d.DegenerateVectors != 1 {
		t.Errorf("DegenerateVectors = %d, want 1", d.DegenerateVectors)
	}
	if d.ZeroVectors != 1 {
		t.Errorf("ZeroVectors = %d, want 1", d.ZeroVectors)
	}
	if d.MinNorm != 0 {
		t.Errorf("MinNorm = %v, want 0", d.MinNorm)
	}
	if math.Abs(d.MaxNorm-2.0) > 1e-6 {
		t.Errorf("MaxNorm = %v, want 2", d.MaxNorm)
	}
}

func TestValidateEmpty(t *testing.T) {
	d := Validate(nil)
	if d.TotalVectors != 0 || d.MinNorm != 0 || d.MaxNorm != 0 {
		t.Errorf("empty batch diagnostics = %+v", d)
	}
}

func TestValidateSkipsZeroNormPairs(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{0, 0},
		{0, 1},
	}
	d := Validate(vectors)
	// Only the (0, 2) pair survives; the zero vector joins no pair.
	if d.SampledPairs != 1 {
		t.Errorf("SampledPairs = %d, want 1", d.SampledPairs)
	}
}

func TestValidateIdenticalPairs(t *testing.T) {
	vectors := [][]float32{
		{1, 2, 3},
		{1, 2, 3},
		{2, 4, 6}, // parallel counts as identical under cosine
	}
	d := Validate(vectors)
	if d.IdenticalPairs != 3 {
		t.Errorf("IdenticalPairs = %d, want 3", d.IdenticalPairs)
	}
	if math.Abs(d.AvgPairwiseSim-1) > 1e-9 {
		t.Errorf("AvgPairwiseSim = %v, want 1", d.AvgPairwiseSim)
	}
}

func TestValidatePairCap(t *testing.T) {
	vectors := make([][]float32, 30)
	for i := range vectors {
		vectors[i] = vec(8, i, 1)
	}
	d := Validate(vectors)
	if d.SampledPairs != maxSampledPairs {
		t.Errorf("SampledPairs = %d, want cap %d", d.SampledPairs, maxSampledPairs)
	}
}

func TestCheckUsability(t *testing.T) {
	tests := []struct {
		name           string
		d              models.EmbeddingDiagnostics
		min            int
		wantValid      bool
		wantDegenerate bool
	}{
		{
			name: "no vectors",
			d:    models.EmbeddingDiagnostics{},
		},
		{
			name: "below minimum valid count",
			d:    models.EmbeddingDiagnostics{TotalVectors: 30, ValidVectors: 10, AvgNorm: 1},
		},
		{
			name: "norm floor",
			d:    models.EmbeddingDiagnostics{TotalVectors: 30, ValidVectors: 30, AvgNorm: 0.005},
		},
		{
			name:      "usable",
			d:         models.EmbeddingDiagnostics{TotalVectors: 30, ValidVectors: 30, AvgNorm: 1},
			wantValid: true,
		},
		{
			name: "constant-like corpus",
			d: models.EmbeddingDiagnostics{
				TotalVectors: 30, ValidVectors: 30, AvgNorm: 1, IdenticalPairs: 28,
			},
			wantValid:      true,
			wantDegenerate: true,
		},
		{
			name:      "custom minimum",
			d:         models.EmbeddingDiagnostics{TotalVectors: 5, ValidVectors: 5, AvgNorm: 1},
			min:       5,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := CheckUsability(tt.d, tt.min)
			if u.Valid != tt.wantValid {
				t.Errorf("Valid = %t, want %t (reason %q)", u.Valid, tt.wantValid, u.Reason)
			}
			if u.Degenerate != tt.wantDegenerate {
				t.Errorf("Degenerate = %t, want %t", u.Degenerate, tt.wantDegenerate)
			}
			if !u.Valid && u.Reason == "" {
				t.Error("invalid batches must carry a reason")
			}
		})
	}
}
