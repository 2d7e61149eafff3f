package models

// StabilityPoint holds bootstrap statistics for one sample size. CV is the
// coefficient of variation (std/|mean|) of the decay rate across trials;
// kappa and fit quality are tracked as secondary metrics.
type StabilityPoint struct {
	SampleSize int `json:"sample_size"`
	Trials     int `json:"trials"`
	Failed     int `json:"failed"`

	LambdaMean float64 `json:"lambda_mean"`
	LambdaStd  float64 `json:"lambda_std"`
	LambdaCV   float64 `json:"lambda_cv"`

	KappaMean float64 `json:"kappa_mean"`
	KappaStd  float64 `json:"kappa_std"`

	FitQualityMean float64 `json:"fit_quality_mean"`
	FitQualityStd  float64 `json:"fit_quality_std"`

	// Skipped marks a size where over half the trials failed; it counts
	// neither as stable nor unstable.
	Skipped bool `json:"skipped"`

	Stable bool `json:"stable"`
}

// NCritResult is the outcome of a stability scan: the smallest sample size
// at which the decay-rate estimate stabilizes.
type NCritResult struct {
	NCrit int `json:"n_crit"`

	// Stabilized is false when no scanned size met the CV threshold; NCrit
	// then defaults to the largest scanned size.
	Stabilized bool `json:"stabilized"`

	// CILow/CIHigh is a best-effort confidence interval: the span of sizes
	// whose CV sits within half the threshold of the cutoff.
	CILow  int `json:"ci_low"`
	CIHigh int `json:"ci_high"`

	CVThreshold float64          `json:"cv_threshold"`
	Points      []StabilityPoint `json:"points"`
}
