// Package coherence computes lagged similarity curves and the metrics
// derived from them: the exponential decay rate and the forward/backward
// asymmetry statistics.
package coherence

import (
	"math"

	"github.com/coherencelab/glotta/internal/diagnostics"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

// DefaultMaxLag is the curve depth when the caller does not choose one.
const DefaultMaxLag = 5

// BuildCurves computes forward and backward lagged similarity over lags
// 1..maxLag. Forward similarity at lag l pairs item i with item i+l over the
// key order; backward uses the reversed key order with the same pairing. A
// pair only counts when both vectors clear the norm floor. Per-lag sample
// size is min(forward count, backward count); std dev and std err come from
// the forward sample only. A lag with no valid pairs yields Forward = NaN.
func BuildCurves(embeddings map[string][]float32, orderedKeys []string, maxLag int) []models.CoherenceCurve {
	if maxLag <= 0 {
		maxLag = DefaultMaxLag
	}

	reversed := make([]string, len(orderedKeys))
	for i, k := range orderedKeys {
		reversed[len(orderedKeys)-1-i] = k
	}

	curves := make([]models.CoherenceCurve, 0, maxLag)
	for lag := 1; lag <= maxLag; lag++ {
		forward := laggedSims(embeddings, orderedKeys, lag)
		backward := laggedSims(embeddings, reversed, lag)

		c := models.CoherenceCurve{Lag: lag}
		if len(forward) == 0 {
			c.Forward = math.NaN()
			c.Backward = math.NaN()
			curves = append(curves, c)
			continue
		}

		c.Forward = precision.ToFloat64(precision.Mean(forward))
		if len(backward) > 0 {
			c.Backward = precision.ToFloat64(precision.Mean(backward))
		} else {
			c.Backward = math.NaN()
		}

		n := len(forward)
		if len(backward) < n {
			n = len(backward)
		}
		c.SampleSize = n

		c.StdDev = precision.ToFloat64(precision.StdDev(forward))
		if len(forward) > 0 {
			c.StdErr = c.StdDev / math.Sqrt(float64(len(forward)))
		}
		curves = append(curves, c)
	}
	return curves
}

// laggedSims collects cosine similarities between items i and i+lag for all
// i where both vectors clear the norm floor.
func laggedSims(embeddings map[string][]float32, keys []string, lag int) []float64 {
	var sims []float64
	for i := 0; i+lag < len(keys); i++ {
		a, okA := embeddings[keys[i]]
		b, okB := embeddings[keys[i+lag]]
		if !okA || !okB {
			continue
		}
		wa, wb := precision.Widen(a), precision.Widen(b)
		if precision.ToFloat64(precision.Magnitude(wa)) < diagnostics.MinValidNorm {
			continue
		}
		if precision.ToFloat64(precision.Magnitude(wb)) < diagnostics.MinValidNorm {
			continue
		}
		sim, err := precision.CosineSimilarity(wa, wb)
		if err != nil {
			continue
		}
		sims = append(sims, precision.ToFloat64(sim))
	}
	return sims
}
