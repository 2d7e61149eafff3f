package validation

import (
	"math"

	"github.com/coherencelab/glotta/internal/precision"
)

// Pass criteria for the three protocols.
const (
	independenceCorrFloor = 0.99
	independenceMADCeil   = 0.001
	baselineZCeil         = 2.0
	crossModelRhoFloor    = 0.90
)

// IndependenceResult reports whether blind and context-aware measurements of
// the same transformed text agree: high correlation and tiny mean absolute
// difference mean the measurement layer does not leak context.
type IndependenceResult struct {
	Pass        bool    `json:"pass"`
	Correlation float64 `json:"correlation"`
	MeanAbsDiff float64 `json:"mean_abs_diff"`
}

// CheckIndependence passes when correlation > 0.99 and the mean absolute
// difference < 0.001.
func CheckIndependence(blind, aware []float64) IndependenceResult {
	r := IndependenceResult{Correlation: Pearson(blind, aware), MeanAbsDiff: math.NaN()}
	if len(blind) != len(aware) || len(blind) == 0 {
		return r
	}

	diffs := make([]float64, len(blind))
	for i := range blind {
		diffs[i] = math.Abs(blind[i] - aware[i])
	}
	r.MeanAbsDiff = precision.ToFloat64(precision.Mean(diffs))

	r.Pass = r.Correlation > independenceCorrFloor && r.MeanAbsDiff < independenceMADCeil
	return r
}

// BaselineResult reports a z-test of mean decay rate on transformed corpora
// against the virgin baseline, using the virgin corpus's standard error.
type BaselineResult struct {
	Pass            bool    `json:"pass"`
	Z               float64 `json:"z"`
	VirginMean      float64 `json:"virgin_mean"`
	TransformedMean float64 `json:"transformed_mean"`
	VirginStdErr    float64 `json:"virgin_std_err"`
}

// CheckBaselineStability passes when |z| < 2.0. A zero virgin standard
// error with differing means fails with z = +/-Inf; with equal means it
// passes with z = 0.
func CheckBaselineStability(virgin, transformed []float64) BaselineResult {
	r := BaselineResult{Z: math.NaN()}
	if len(virgin) < 2 || len(transformed) == 0 {
		return r
	}

	r.VirginMean = precision.ToFloat64(precision.Mean(virgin))
	r.TransformedMean = precision.ToFloat64(precision.Mean(transformed))
	r.VirginStdErr = precision.ToFloat64(precision.StdDev(virgin)) / math.Sqrt(float64(len(virgin)))

	diff := r.TransformedMean - r.VirginMean
	switch {
	case r.VirginStdErr > 0:
		r.Z = diff / r.VirginStdErr
	case diff == 0:
		r.Z = 0
	default:
		r.Z = math.Inf(sign(diff))
	}

	r.Pass = math.Abs(r.Z) < baselineZCeil
	return r
}

// ModelRanking is one embedding model's decay rates over a shared corpus
// set, in corpus order.
type ModelRanking struct {
	Model      string    `json:"model"`
	DecayRates []float64 `json:"decay_rates"`
}

// PairCorrelation is the Spearman rank correlation of two models' rankings.
type PairCorrelation struct {
	ModelA string  `json:"model_a"`
	ModelB string  `json:"model_b"`
	Rho    float64 `json:"rho"`
}

// CrossModelResult reports whether decay-rate rankings are invariant across
// embedding models.
type CrossModelResult struct {
	Pass     bool              `json:"pass"`
	MeanRho  float64           `json:"mean_rho"`
	Pairwise []PairCorrelation `json:"pairwise"`
}

// CheckCrossModelInvariance passes when the mean pairwise Spearman
// correlation exceeds 0.90. Fewer than two models cannot pass.
func CheckCrossModelInvariance(rankings []ModelRanking) CrossModelResult {
	r := CrossModelResult{MeanRho: math.NaN()}
	if len(rankings) < 2 {
		return r
	}

	var rhos []float64
	for i := 0; i < len(rankings); i++ {
		for j := i + 1; j < len(rankings); j++ {
			rho := Spearman(rankings[i].DecayRates, rankings[j].DecayRates)
			r.Pairwise = append(r.Pairwise, PairCorrelation{
				ModelA: rankings[i].Model,
				ModelB: rankings[j].Model,
				Rho:    rho,
			})
			if !math.IsNaN(rho) {
				rhos = append(rhos, rho)
			}
		}
	}
	if len(rhos) == 0 {
		return r
	}

	r.MeanRho = precision.ToFloat64(precision.Mean(rhos))
	r.Pass = r.MeanRho > crossModelRhoFloor
	return r
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
