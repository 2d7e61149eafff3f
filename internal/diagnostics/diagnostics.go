// Package diagnostics validates embedding batches before any physics runs.
//
// The gate has three outcomes: usable, unusable, and degenerate-but-usable.
// The degenerate path exists so a constant corpus produces a well-defined
// "perfect coherence, zero decay" result instead of an error, which keeps
// sanity tests meaningful.
package diagnostics

import (
	"fmt"
	"math"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

const (
	// MinValidNorm is the L2 floor below which a vector is degenerate.
	MinValidNorm = 0.01

	// DefaultMinValidVectors is the empirical minimum batch size for a
	// reliable decay-rate estimate.
	DefaultMinValidVectors = 20

	// MaxIdenticalRatio is the identical-pairs-to-vectors ratio above which
	// a batch counts as degenerate (constant-like corpus).
	MaxIdenticalRatio = 0.8

	// maxSampledPairs caps the pairwise similarity sample, bounding cost at
	// O(min(50, n^2/2)).
	maxSampledPairs = 50

	// identicalSimFloor is the similarity above which two vectors count as
	// near-identical.
	identicalSimFloor = 0.9999
)

// Validate classifies each vector by L2 norm and samples pairwise
// similarities. Vectors must share one dimension; mismatches are a caller
// error and show up as whatever cosine produces, not as a panic.
func Validate(vectors [][]float32) models.EmbeddingDiagnostics {
	d := models.EmbeddingDiagnostics{
		TotalVectors: len(vectors),
		MinNorm:      math.Inf(1),
		MaxNorm:      math.Inf(-1),
	}
	if len(vectors) == 0 {
		d.MinNorm, d.MaxNorm = 0, 0
		return d
	}

	norms := make([]float64, len(vectors))
	for i, vec := range vectors {
		norm := precision.ToFloat64(precision.Magnitude(precision.Widen(vec)))
		norms[i] = norm
		switch {
		case norm == 0:
			d.ZeroVectors++
		case norm < MinValidNorm:
			d.DegenerateVectors++
		default:
			d.ValidVectors++
		}
		if norm < d.MinNorm {
			d.MinNorm = norm
		}
		if norm > d.MaxNorm {
			d.MaxNorm = norm
		}
	}
	d.AvgNorm = precision.ToFloat64(precision.Mean(norms))

	samplePairs(vectors, norms, &d)
	return d
}

// samplePairs walks pairs (i, j), i < j, in row-major order until the cap.
// The fixed order keeps diagnostics reproducible.
func samplePairs(vectors [][]float32, norms []float64, d *models.EmbeddingDiagnostics) {
	var sims []float64
	for i := 0; i < len(vectors) && len(sims) < maxSampledPairs; i++ {
		if norms[i] == 0 {
			continue
		}
		for j := i + 1; j < len(vectors) && len(sims) < maxSampledPairs; j++ {
			if norms[j] == 0 {
				continue
			}
			sim, err := precision.CosineSimilarity(precision.Widen(vectors[i]), precision.Widen(vectors[j]))
			if err != nil {
				continue
			}
			s := precision.ToFloat64(sim)
			sims = append(sims, s)
			if s > identicalSimFloor {
				d.IdenticalPairs++
			}
		}
	}
	d.SampledPairs = len(sims)
	if len(sims) > 0 {
		d.AvgPairwiseSim = precision.ToFloat64(precision.Mean(sims))
	}
}

// CheckUsability decides whether a diagnosed batch supports physics.
// minValidVectors <= 0 selects the default of 20.
func CheckUsability(d models.EmbeddingDiagnostics, minValidVectors int) models.Usability {
	if minValidVectors <= 0 {
		minValidVectors = DefaultMinValidVectors
	}

	if d.TotalVectors == 0 {
		return models.Usability{Reason: "no vectors"}
	}
	if d.ValidVectors < minValidVectors {
		return models.Usability{
			Reason: fmt.Sprintf("%d valid vectors, need at least %d", d.ValidVectors, minValidVectors),
		}
	}
	if d.AvgNorm < MinValidNorm {
		return models.Usability{
			Reason: fmt.Sprintf("average norm %.4f below %.2f floor", d.AvgNorm, MinValidNorm),
		}
	}

	// Constant-like corpus: usable, but flagged so the engine can
	// short-circuit to the perfect-coherence result.
	if float64(d.IdenticalPairs)/float64(d.TotalVectors) > MaxIdenticalRatio {
		return models.Usability{
			Valid:      true,
			Degenerate: true,
			Reason:     "near-identical vectors dominate; corpus is constant-like",
		}
	}

	return models.Usability{Valid: true}
}
