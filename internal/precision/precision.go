// Package precision provides arbitrary-precision statistical primitives.
//
// Every statistic the engine reports passes through this layer. The point is
// to keep "a decay rate of exactly zero" distinguishable from float64 epsilon
// noise: sums of squared small differences in 64-bit floats cancel
// catastrophically, which can flip the sign of a near-zero slope or truncate
// a true zero into 1e-16 garbage. All arithmetic here runs on math/big.Float
// at 128 significant decimal digits; values convert to float64 only at the
// package boundary.
package precision

import (
	"fmt"
	"math"
	"math/big"
)

// SignificantDigits is the working decimal precision of the layer.
const SignificantDigits = 128

// mantissaBits covers SignificantDigits decimal digits
// (128 * log2(10) ~ 425.2) with guard bits for series evaluation.
const mantissaBits = 448

// New returns a zero value at working precision.
func New() *big.Float {
	return new(big.Float).SetPrec(mantissaBits)
}

// FromFloat64 converts v to working precision.
func FromFloat64(v float64) *big.Float {
	return New().SetFloat64(v)
}

// FromString parses a decimal literal at working precision. Unlike
// FromFloat64 the value is not routed through a 53-bit mantissa first, so
// thresholds like "1e-15" compare exactly.
func FromString(s string) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 10, mantissaBits, big.ToNearestEven)
	if err != nil {
		return nil, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return f, nil
}

// MustFromString is FromString for compile-time constants.
func MustFromString(s string) *big.Float {
	f, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) *big.Float {
	if len(values) == 0 {
		return New()
	}
	sum := New()
	for _, v := range values {
		sum.Add(sum, FromFloat64(v))
	}
	return sum.Quo(sum, FromFloat64(float64(len(values))))
}

// Variance returns the sample variance (n-1 denominator).
// Fewer than two values yield 0.
func Variance(values []float64) *big.Float {
	if len(values) < 2 {
		return New()
	}
	mean := Mean(values)
	sum := New()
	for _, v := range values {
		d := FromFloat64(v)
		d.Sub(d, mean)
		d.Mul(d, d)
		sum.Add(sum, d)
	}
	return sum.Quo(sum, FromFloat64(float64(len(values)-1)))
}

// StdDev returns the sample standard deviation.
func StdDev(values []float64) *big.Float {
	v := Variance(values)
	return v.Sqrt(v)
}

// Magnitude returns the L2 norm of vec.
func Magnitude(vec []float64) *big.Float {
	sum := New()
	for _, v := range vec {
		sq := FromFloat64(v)
		sq.Mul(sq, sq)
		sum.Add(sum, sq)
	}
	return sum.Sqrt(sum)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Vectors of mismatched length are a caller error. A zero-magnitude
// operand yields 0.
func CosineSimilarity(a, b []float64) (*big.Float, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("cosine: dimension mismatch %d vs %d", len(a), len(b))
	}
	dot := New()
	for i := range a {
		p := FromFloat64(a[i])
		p.Mul(p, FromFloat64(b[i]))
		dot.Add(dot, p)
	}
	magA := Magnitude(a)
	magB := Magnitude(b)
	if magA.Sign() == 0 || magB.Sign() == 0 {
		return New(), nil
	}
	dot.Quo(dot, magA)
	dot.Quo(dot, magB)
	return dot, nil
}

// RegressionResult holds a least-squares fit at the float64 boundary.
type RegressionResult struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// singularFloor is the denominator magnitude below which the normal
// equations are treated as singular.
var singularFloor = MustFromString("1e-20")

// LinearRegression fits y = slope*x + intercept by least squares at working
// precision. With n < 2, mismatched inputs, or a near-singular denominator
// (|n*Sum(x^2) - Sum(x)^2| < 1e-20) it returns all zeros. When the total
// variance of y is zero, R2 is 1 (a constant series is a perfect fit).
func LinearRegression(x, y []float64) RegressionResult {
	n := len(x)
	if n < 2 || len(y) != n {
		return RegressionResult{}
	}

	nf := FromFloat64(float64(n))
	sumX, sumY, sumXY, sumXX := New(), New(), New(), New()
	for i := 0; i < n; i++ {
		xi := FromFloat64(x[i])
		yi := FromFloat64(y[i])
		sumX.Add(sumX, xi)
		sumY.Add(sumY, yi)
		xy := New().Mul(xi, yi)
		sumXY.Add(sumXY, xy)
		xx := New().Mul(xi, xi)
		sumXX.Add(sumXX, xx)
	}

	// denom = n*Sum(x^2) - Sum(x)^2
	denom := New().Mul(nf, sumXX)
	sx2 := New().Mul(sumX, sumX)
	denom.Sub(denom, sx2)
	if New().Abs(denom).Cmp(singularFloor) < 0 {
		return RegressionResult{}
	}

	// slope = (n*Sum(xy) - Sum(x)*Sum(y)) / denom
	slope := New().Mul(nf, sumXY)
	sxsy := New().Mul(sumX, sumY)
	slope.Sub(slope, sxsy)
	slope.Quo(slope, denom)

	// intercept = (Sum(y) - slope*Sum(x)) / n
	intercept := New().Mul(slope, sumX)
	intercept.Sub(sumY, intercept)
	intercept.Quo(intercept, nf)

	meanY := New().Quo(new(big.Float).SetPrec(mantissaBits).Set(sumY), nf)
	ssTot, ssRes := New(), New()
	for i := 0; i < n; i++ {
		yi := FromFloat64(y[i])
		dt := New().Sub(yi, meanY)
		dt.Mul(dt, dt)
		ssTot.Add(ssTot, dt)

		pred := New().Mul(slope, FromFloat64(x[i]))
		pred.Add(pred, intercept)
		dr := New().Sub(yi, pred)
		dr.Mul(dr, dr)
		ssRes.Add(ssRes, dr)
	}

	r2 := 1.0
	if ssTot.Sign() != 0 {
		frac := New().Quo(ssRes, ssTot)
		one := FromFloat64(1)
		one.Sub(one, frac)
		r2, _ = one.Float64()
	}

	s, _ := slope.Float64()
	ic, _ := intercept.Float64()
	return RegressionResult{Slope: s, Intercept: ic, R2: r2}
}

// ToFloat64 converts a working-precision value to float64 at the boundary.
// A nil input maps to NaN.
func ToFloat64(f *big.Float) float64 {
	if f == nil {
		return math.NaN()
	}
	v, _ := f.Float64()
	return v
}

// Widen converts a provider float32 vector for use with this layer.
func Widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
