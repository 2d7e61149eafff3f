// Package genealogy predicts whether two related corpora share structure by
// descent or by contact, from curve-shape features of a physics run.
package genealogy

import (
	"math"

	"github.com/coherencelab/glotta/internal/models"
)

// ExtractFeatures builds the fixed feature vector from a physics run.
// stability may be nil when no bootstrap scan ran; its features stay zero.
// Non-finite inputs are zeroed so the discriminator always sees numbers.
func ExtractFeatures(decay models.DecayAnalysis, curves []models.CoherenceCurve, stability *models.NCritResult) models.GenealogyFeatures {
	var f models.GenealogyFeatures

	f.Vector[models.FeatureDecayRate] = finite(decay.Lambda)
	f.Vector[models.FeatureFitQuality] = finite(decay.FitQuality)
	f.Vector[models.FeatureCoherenceLag1] = finite(decay.CoherenceAtLags[1])
	f.Vector[models.FeatureCoherenceLag3] = finite(decay.CoherenceAtLags[3])
	f.Vector[models.FeatureCoherenceLag5] = finite(decay.CoherenceAtLags[5])
	f.Vector[models.FeatureConvexity] = convexity(curves)

	if stability != nil && len(stability.Points) > 0 {
		last := stability.Points[len(stability.Points)-1]
		f.Vector[models.FeatureVarLambda] = finite(last.LambdaStd * last.LambdaStd)
		f.Vector[models.FeatureVarKappa] = finite(last.KappaStd * last.KappaStd)
	}

	return f
}

// convexity measures how far the curve's midpoint sits from the straight
// line between its first and last computed lags. Positive means the curve
// bows above the chord (slow early decay), negative below it.
func convexity(curves []models.CoherenceCurve) float64 {
	var computed []models.CoherenceCurve
	for _, c := range curves {
		if c.Computed() && !math.IsInf(c.Forward, 0) {
			computed = append(computed, c)
		}
	}
	if len(computed) < 3 {
		return 0
	}

	first := computed[0]
	last := computed[len(computed)-1]
	mid := computed[len(computed)/2]
	if last.Lag == first.Lag {
		return 0
	}

	t := float64(mid.Lag-first.Lag) / float64(last.Lag-first.Lag)
	expected := first.Forward + (last.Forward-first.Forward)*t
	return finite(mid.Forward - expected)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
