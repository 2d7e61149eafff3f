package models

import "math"

// CoherenceCurve is the lagged similarity record for one lag. A curve slice
// covers lags 1..maxLag. Forward == NaN means the lag could not be computed
// at all, which is distinct from a computed 0.
type CoherenceCurve struct {
	Lag        int     `json:"lag"`
	Forward    float64 `json:"forward"`
	Backward   float64 `json:"backward"`
	SampleSize int     `json:"sample_size"`
	StdDev     float64 `json:"std_dev"`
	StdErr     float64 `json:"std_err"`
}

// Computed reports whether the lag produced a usable forward value.
func (c CoherenceCurve) Computed() bool {
	return !math.IsNaN(c.Forward) && c.SampleSize > 0
}

// DecayAnalysis is the exponential-fit result over a coherence curve.
// Lambda is never negative: a positive fitted slope clamps to zero decay.
type DecayAnalysis struct {
	Lambda          float64         `json:"lambda"`
	CoherenceRadius float64         `json:"coherence_radius"`
	FitQuality      float64         `json:"fit_quality"`
	FittedC0        float64         `json:"fitted_c0"`
	CoherenceAtLags map[int]float64 `json:"coherence_at_lags"`
	Method          string          `json:"method"`
}

// Decay fit method tags.
const (
	MethodLogLinear        = "log_linear_regression"
	MethodInsufficientData = "insufficient_data"
)

// AsymmetryAnalysis holds forward/backward asymmetry metrics. Under a
// symmetric similarity function kappa is expected to sit near zero for any
// input; a material deviation indicates a broken or tampered pipeline, not a
// directional signal.
type AsymmetryAnalysis struct {
	KappaMax     float64 `json:"kappa_max"`
	KappaSum     float64 `json:"kappa_sum"`
	Delta        float64 `json:"delta"`
	ForwardMean  float64 `json:"forward_mean"`
	BackwardMean float64 `json:"backward_mean"`

	// ISI is the symmetry-confidence index, 1 - kappaMax; ISIExp is
	// exp(-|delta|/tau). Both are exactly 1 when forward == backward.
	ISI    float64 `json:"isi"`
	ISIExp float64 `json:"isi_exp"`
}
