package hierarchy

import (
	"math"
	"math/big"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

// Genealogical-score weights: morphological regularity is the strongest
// genealogical signal, syntax intermediate, discourse weakest.
const (
	weightMBC = 0.5
	weightICC = 0.3
	weightXCC = 0.2
)

// Classify fills in the genealogical score, classification, and confidence
// on a profile whose ICC/XCC/MBC are already set.
func Classify(r models.HCPResult) models.HCPResult {
	r.GenealogicalScore = weightMBC*r.MBC + weightICC*r.ICC + weightXCC*r.XCC

	switch {
	case r.GenealogicalScore >= 0.6:
		r.Classification = models.ClassGenealogical
		if r.GenealogicalScore >= 0.8 {
			r.Confidence = models.ConfidenceHigh
		} else {
			r.Confidence = models.ConfidenceModerate
		}

	case r.XCC > 0.4 && r.ICC < 0.3 && r.MBC < 0.15:
		r.Classification = models.ClassAreal
		if r.XCC > 0.5 && r.MBC < 0.05 {
			r.Confidence = models.ConfidenceHigh
		} else {
			r.Confidence = models.ConfidenceModerate
		}

	default:
		r.Classification = models.ClassIndetermin
		if r.GenealogicalScore >= 0.4 {
			r.Confidence = models.ConfidenceModerate
		} else {
			r.Confidence = models.ConfidenceLow
		}
	}
	return r
}

// Decay classification thresholds, parsed as exact decimals so the stable
// boundary really sits at 1e-15 and not at its float64 neighbor.
var (
	stableThreshold     = precision.MustFromString("1e-15")
	nearStableThreshold = precision.MustFromString("1e-6")
	slowDecayThreshold  = precision.MustFromString("1e-4")
)

// ClassifyDecayPrecision buckets a decay rate with the precision layer, so a
// true zero is distinguishable from float epsilon noise at 1e-15
// granularity. NaN (an uncomputed lambda) buckets as divergent.
func ClassifyDecayPrecision(lambda float64) models.DecayClass {
	if math.IsNaN(lambda) {
		return models.DecayDivergent
	}
	l := new(big.Float).Abs(precision.FromFloat64(lambda))
	switch {
	case l.Cmp(stableThreshold) < 0:
		return models.DecayStable
	case l.Cmp(nearStableThreshold) < 0:
		return models.DecayNearStable
	case l.Cmp(slowDecayThreshold) < 0:
		return models.DecaySlow
	default:
		return models.DecayDivergent
	}
}

// SprachbundClass maps the two conserved decay buckets to their areal
// classification; ok is false for decaying corpora.
func SprachbundClass(lambda float64) (models.RelationClass, bool) {
	switch ClassifyDecayPrecision(lambda) {
	case models.DecayStable:
		return models.ClassStableSprachbund, true
	case models.DecayNearStable:
		return models.ClassNearStableSprachbund, true
	default:
		return "", false
	}
}
