package coherence

import (
	"math"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

const (
	// DefaultTau scales the exponential symmetry index.
	DefaultTau = 0.01

	// epsilon guards divisions when both coherence means sit at zero.
	epsilon = 1e-10
)

// AnalyzeAsymmetry computes scale-normalized forward/backward asymmetry from
// a coherence curve. Cosine similarity is symmetric under time reversal, so
// kappa is expected to land near zero for any input; the statistic is a
// sanity and tamper-detection signal, not a measure of directed causation.
// With no usable lags the result is the perfectly symmetric default.
func AnalyzeAsymmetry(curves []models.CoherenceCurve, tau float64) models.AsymmetryAnalysis {
	if tau <= 0 {
		tau = DefaultTau
	}

	var forward, backward []float64
	for _, c := range curves {
		if math.IsNaN(c.Forward) || math.IsNaN(c.Backward) || c.SampleSize <= 0 {
			continue
		}
		if math.IsInf(c.Forward, 0) || math.IsInf(c.Backward, 0) {
			continue
		}
		forward = append(forward, c.Forward)
		backward = append(backward, c.Backward)
	}

	if len(forward) == 0 {
		return models.AsymmetryAnalysis{ISI: 1, ISIExp: 1}
	}

	f := precision.ToFloat64(precision.Mean(forward))
	b := precision.ToFloat64(precision.Mean(backward))
	diff := math.Abs(f - b)

	maxFB := math.Max(math.Max(f, b), epsilon)
	sumFB := math.Max(f+b, epsilon)

	kappaMax := diff / maxFB
	kappaSum := diff / sumFB
	delta := (f - b) / sumFB

	isi := 1 - math.Min(1, kappaMax)

	expArg := precision.FromFloat64(-diff / math.Max(tau, epsilon))
	isiExp := precision.ToFloat64(precision.Exp(expArg))

	return models.AsymmetryAnalysis{
		KappaMax:     kappaMax,
		KappaSum:     kappaSum,
		Delta:        delta,
		ForwardMean:  f,
		BackwardMean: b,
		ISI:          isi,
		ISIExp:       isiExp,
	}
}
