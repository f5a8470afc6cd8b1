package mathutil

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// l1Norm selects the sum of absolute values in floats.Norm.
const l1Norm = 1

// Detrend returns x with its least-squares straight-line fit removed.
// The fit is taken over the sample index 0..len(x)-1.
func Detrend(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) < 2 {
		return out
	}

	index := make([]float64, len(x))
	for i := range index {
		index[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(index, x, nil, false)
	for i, v := range x {
		out[i] = v - (intercept + slope*index[i])
	}

	return out
}

// PopStdDev returns the population (biased, 1/N) standard deviation of x.
func PopStdDev(x []float64) float64 {
	return stat.PopStdDev(x, nil)
}

// SumAbs returns Σ|x[i]|.
func SumAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, l1Norm)
}

// IsFlat reports whether every sample of x has the same value, i.e. the
// signal has exactly zero variance. An empty slice is not flat.
func IsFlat(x []float64) bool {
	if len(x) == 0 {
		return false
	}
	return floats.Max(x) == floats.Min(x)
}

// AllWithin reports whether every sample lies in the closed interval [lo, hi].
func AllWithin(x []float64, lo, hi float64) bool {
	if len(x) == 0 {
		return true
	}
	return floats.Min(x) >= lo && floats.Max(x) <= hi
}
