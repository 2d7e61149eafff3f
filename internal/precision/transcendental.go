package precision

import (
	"fmt"
	"math/big"
	"sync"
)

// The decay fit works on log-coherence and the symmetry index needs
// exp(-delta/tau), both at working precision. math/big provides neither, so
// Ln and Exp are implemented here with argument reduction over powers of two
// and rapidly converging series.

var (
	ln2Once sync.Once
	ln2Val  *big.Float
)

// ln2 computes log(2) once via the atanh series:
// ln 2 = 2*atanh(1/3) = 2 * Sum_{i>=0} (1/3)^(2i+1) / (2i+1).
// Each term shrinks by a factor of 9, so ~160 terms cover 448 bits.
func ln2() *big.Float {
	ln2Once.Do(func() {
		third := New().Quo(FromFloat64(1), FromFloat64(3))
		ln2Val = atanhSeries(third)
		ln2Val.Add(ln2Val, ln2Val)
	})
	return new(big.Float).SetPrec(mantissaBits).Set(ln2Val)
}

// atanhSeries evaluates atanh(z) = Sum z^(2i+1)/(2i+1) for |z| <= 1/3.
func atanhSeries(z *big.Float) *big.Float {
	sum := New().Set(z)
	z2 := New().Mul(z, z)
	pow := New().Set(z)
	// Terms decay at least as fast as 9^-i; 2^-448 is reached well inside
	// the loop bound.
	for i := 1; i <= 200; i++ {
		pow.Mul(pow, z2)
		term := New().Quo(pow, FromFloat64(float64(2*i+1)))
		if term.MantExp(nil) < -int(mantissaBits)-8 {
			break
		}
		sum.Add(sum, term)
	}
	return sum
}

// Ln returns the natural logarithm of x at working precision.
// Non-positive x is an error.
func Ln(x *big.Float) (*big.Float, error) {
	if x == nil || x.Sign() <= 0 {
		return nil, fmt.Errorf("ln: argument must be positive")
	}
	// x = m * 2^k with m in [0.5, 1), so ln x = k*ln2 + ln m.
	m := New()
	k := x.MantExp(m)

	// ln m = 2*atanh((m-1)/(m+1)); with m in [0.5,1), |z| <= 1/3.
	num := New().Sub(m, FromFloat64(1))
	den := New().Add(m, FromFloat64(1))
	z := num.Quo(num, den)
	lnM := atanhSeries(z)
	lnM.Add(lnM, lnM)

	result := New().Mul(FromFloat64(float64(k)), ln2())
	result.Add(result, lnM)
	return result, nil
}

// Exp returns e^x at working precision.
func Exp(x *big.Float) *big.Float {
	if x == nil || x.Sign() == 0 {
		return FromFloat64(1)
	}
	// Reduce x = k*ln2 + r with |r| <= ln2/2, then e^x = 2^k * e^r.
	l2 := ln2()
	kf := New().Quo(x, l2)
	ki, _ := kf.Float64()
	k := int(roundHalfAway(ki))

	r := New().Mul(FromFloat64(float64(k)), l2)
	r.Sub(x, r)

	// Taylor series for e^r; |r| <= 0.347 so terms vanish quickly.
	sum := FromFloat64(1)
	term := FromFloat64(1)
	for i := 1; i <= 300; i++ {
		term.Mul(term, r)
		term.Quo(term, FromFloat64(float64(i)))
		if term.MantExp(nil) < -int(mantissaBits)-8 {
			break
		}
		sum.Add(sum, term)
	}
	// SetMantExp(mant, exp) computes mant * 2^exp without requiring a
	// normalized mantissa, which is exactly the 2^k scaling step.
	return New().SetMantExp(sum, k)
}

func roundHalfAway(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}
