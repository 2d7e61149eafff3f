package bootstrap

import (
	"math"

	"github.com/coherencelab/glotta/internal/precision"
)

// VarianceStats is a summary of one metric across bootstrap trials.
type VarianceStats struct {
	Mean   float64
	Std    float64
	CILow  float64
	CIHigh float64
}

// z975 is the two-sided 95% normal quantile.
const z975 = 1.959963984540054

// ComputeVarianceStats summarizes trial values with a normal-approximation
// 95% confidence interval on the mean. Empty input yields all NaN.
func ComputeVarianceStats(values []float64) VarianceStats {
	if len(values) == 0 {
		nan := math.NaN()
		return VarianceStats{Mean: nan, Std: nan, CILow: nan, CIHigh: nan}
	}
	mean := precision.ToFloat64(precision.Mean(values))
	std := precision.ToFloat64(precision.StdDev(values))
	half := z975 * std / math.Sqrt(float64(len(values)))
	return VarianceStats{
		Mean:   mean,
		Std:    std,
		CILow:  mean - half,
		CIHigh: mean + half,
	}
}
