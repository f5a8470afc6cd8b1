package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/testutil"
)

func TestDetrend_RemovesLine(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = 3.5 - 0.25*float64(i)
	}

	testutil.AssertSlicesInDelta(t, make([]float64, len(x)), Detrend(x), 1e-10)
}

func TestDetrend_KeepsZeroMeanOscillation(t *testing.T) {
	n := 200
	osc := testutil.Sine(n, 50, 2.0, 1.0, 0)
	x := make([]float64, n)
	for i := range x {
		x[i] = osc[i] + 0.01*float64(i) + 7
	}

	out := Detrend(x)

	assert.Len(t, out, n)
	var mean float64
	for _, v := range out {
		mean += v
	}
	mean /= float64(n)
	assert.InDelta(t, 0, mean, 1e-9, "detrended signal must have zero mean")

	// Residual slope of the output is zero by construction.
	var num, den float64
	for i, v := range out {
		d := float64(i) - float64(n-1)/2
		num += d * v
		den += d * d
	}
	assert.InDelta(t, 0, num/den, 1e-12)

	// Eight whole cycles: only the small linear component of the sine is lost.
	assert.InDelta(t, 1/math.Sqrt2, PopStdDev(out), 0.01)
}

func TestDetrend_Short(t *testing.T) {
	assert.Equal(t, []float64{0}, Detrend([]float64{4.2}))
	assert.Empty(t, Detrend(nil))
}

func TestPopStdDev(t *testing.T) {
	// numpy.std([2, 4, 4, 4, 5, 5, 7, 9]) == 2
	assert.InDelta(t, 2.0, PopStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.InDelta(t, 0.0, PopStdDev([]float64{3, 3, 3}), 1e-12)
}

func TestSumAbs(t *testing.T) {
	assert.InDelta(t, 10.0, SumAbs([]float64{1, -2, 3, -4}), 1e-12)
	assert.Equal(t, 0.0, SumAbs(nil))
}

func TestIsFlat(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want bool
	}{
		{"constant", []float64{0.1, 0.1, 0.1, 0.1}, true},
		{"single sample", []float64{1}, true},
		{"one deviating sample", []float64{0.1, 0.1, 0.1000001, 0.1}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFlat(tt.x))
		})
	}
}

func TestAllWithin(t *testing.T) {
	assert.True(t, AllWithin([]float64{0.04, 1, 2.5}, 0.04, 2.5), "bounds are inclusive")
	assert.False(t, AllWithin([]float64{0.5, 0.03}, 0.04, 2.5))
	assert.False(t, AllWithin([]float64{0.5, 2.51}, 0.04, 2.5))
	assert.True(t, AllWithin(nil, 0.04, 2.5))
}
