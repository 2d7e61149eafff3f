// Package validation holds the layer-separation protocols: statistical
// checks that the measurement layer is independent of the layers around it.
package validation

import (
	"math"
	"sort"

	"github.com/coherencelab/glotta/internal/precision"
)

// Pearson returns the linear correlation of x and y, or NaN for mismatched
// or sub-two-point inputs. A zero-variance series also yields NaN.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return math.NaN()
	}

	meanX := precision.ToFloat64(precision.Mean(x))
	meanY := precision.ToFloat64(precision.Mean(y))

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// Spearman returns the rank correlation of x and y: Pearson over ranks,
// with ties assigned their average rank.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	return Pearson(ranks(x), ranks(y))
}

// ranks assigns 1-based ranks, averaging over tied runs.
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// average rank over the tied run [i, j]
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}
