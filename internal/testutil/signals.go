package testutil

import (
	"math"
	"math/rand/v2"
)

// Typical NIRS window used throughout the tests: 10 s at 50 Hz.
const (
	DefaultSampleRate = 50.0
	DefaultSeconds    = 10.0
)

// Window holds the four channels of one synthetic recording window.
type Window struct {
	OD1, OD2, Oxy, Dxy []float64
	SampleRate         float64
}

// Sine returns amp·sin(2π·freq·t + phase) sampled at fs.
func Sine(n int, fs, freq, amp, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/fs+phase)
	}
	return out
}

// Noise returns zero-mean uniform noise in [-amp, amp] from a seeded source.
func Noise(n int, amp float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}
	return out
}

// Add returns the element-wise sum of equal-length slices.
func Add(parts ...[]float64) []float64 {
	if len(parts) == 0 {
		return nil
	}
	out := make([]float64, len(parts[0]))
	for _, p := range parts {
		for i, v := range p {
			out[i] += v
		}
	}
	return out
}

// Offset returns x + c.
func Offset(x []float64, c float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + c
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// CleanWindow builds a high quality window: both OD channels carry the same
// 1.2 Hz cardiac pulsation with a small amount of independent noise, and oxy
// dominates dxy.
func CleanWindow(fs, seconds float64, seed uint64) Window {
	n := int(fs * seconds)
	pulse := Sine(n, fs, 1.2, 0.01, 0)

	return Window{
		OD1:        Offset(Add(pulse, Noise(n, 1e-5, seed)), 1.0),
		OD2:        Offset(Add(pulse, Noise(n, 1e-5, seed+1)), 0.8),
		Oxy:        Add(Sine(n, fs, 1.2, 1.0, 0), Noise(n, 0.01, seed+2)),
		Dxy:        Add(Sine(n, fs, 1.2, 0.2, math.Pi), Noise(n, 0.01, seed+3)),
		SampleRate: fs,
	}
}

// NoisyWindow builds a window whose OD channels share only a weak pulsation
// buried in independent noise, so it reaches the regression stage. oxyAmp and
// dxyAmp set the in-band amplitudes of the hemoglobin channels.
func NoisyWindow(fs, seconds, oxyAmp, dxyAmp float64, seed uint64) Window {
	n := int(fs * seconds)
	pulse := Sine(n, fs, 1.2, 0.002, 0)

	return Window{
		OD1:        Offset(Add(pulse, Noise(n, 0.02, seed)), 1.0),
		OD2:        Offset(Add(pulse, Noise(n, 0.02, seed+1)), 0.8),
		Oxy:        Sine(n, fs, 1.2, oxyAmp, 0),
		Dxy:        Sine(n, fs, 1.0, dxyAmp, 0.3),
		SampleRate: fs,
	}
}
