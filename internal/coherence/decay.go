package coherence

import (
	"math"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

// FitDecay estimates the exponential decay constant of a coherence curve by
// fitting log(forward) = log(C0) - lambda*lag with the precision regression
// primitive. Log-linearization is the standard way to recover an exponential
// decay constant without non-linear optimization; the price is that only
// strictly positive coherence values participate. Fewer than two usable
// points yield {Lambda: NaN, Method: insufficient_data}.
func FitDecay(curves []models.CoherenceCurve) models.DecayAnalysis {
	var lags, logCoh []float64
	atLags := make(map[int]float64, len(curves))

	for _, c := range curves {
		if !c.Computed() || c.Forward <= 0 || math.IsInf(c.Forward, 0) {
			continue
		}
		atLags[c.Lag] = c.Forward

		ln, err := precision.Ln(precision.FromFloat64(c.Forward))
		if err != nil {
			continue
		}
		lags = append(lags, float64(c.Lag))
		logCoh = append(logCoh, precision.ToFloat64(ln))
	}

	if len(lags) < 2 {
		return models.DecayAnalysis{
			Lambda:          math.NaN(),
			CoherenceRadius: math.NaN(),
			FitQuality:      math.NaN(),
			FittedC0:        math.NaN(),
			CoherenceAtLags: atLags,
			Method:          models.MethodInsufficientData,
		}
	}

	fit := precision.LinearRegression(lags, logCoh)

	lambda := -fit.Slope
	if lambda < 0 {
		// A rising curve is zero decay, never negative decay.
		lambda = 0
	}

	radius := math.Inf(1)
	if lambda > 0 {
		radius = 1 / lambda
	}

	quality := fit.R2
	if quality < 0 {
		quality = 0
	} else if quality > 1 {
		quality = 1
	}

	return models.DecayAnalysis{
		Lambda:          lambda,
		CoherenceRadius: radius,
		FitQuality:      quality,
		FittedC0:        precision.ToFloat64(precision.Exp(precision.FromFloat64(fit.Intercept))),
		CoherenceAtLags: atLags,
		Method:          models.MethodLogLinear,
	}
}
