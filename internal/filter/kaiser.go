// Package filter designs Kaiser-window FIR bandpass filters and applies them
// without phase distortion.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	// DefaultAttenuation is the design stopband attenuation in dB.
	DefaultAttenuation = 65.0

	// DefaultTransitionWidth is the design transition width in Hz.
	DefaultTransitionWidth = 0.2

	// minFilterTaps is the shortest kernel the designer will return.
	// A 3-tap filter is the smallest odd, symmetric bandpass kernel.
	minFilterTaps = 3

	// maxTapsDivisor caps the tap count at len(signal)/3.5 on short windows.
	// Empirical calibration constant; keep it exact, scores depend on it.
	maxTapsDivisor = 3.5

	windowNormalizationFactor = 2.0
	sincZeroThreshold         = 1e-10
)

var (
	// ErrInvalidBand indicates band edges that are not 0 < low < high < Nyquist.
	ErrInvalidBand = errors.New("invalid pass band")

	// ErrSignalTooShort indicates a signal that cannot be zero-phase filtered.
	ErrSignalTooShort = errors.New("signal too short for filtering")
)

// KaiserWindow generates a symmetric Kaiser window of the specified length and β.
//
//	w[n] = I₀(β·sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (length-1)/2
//
// The centre tap is 1 and w[i] = w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	if length == 1 {
		window[0] = 1.0
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		// position relative to centre, in [-1, 1]
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}

	return window
}

// BandSpec describes a bandpass design in physical units.
type BandSpec struct {
	// SampleRate in Hz.
	SampleRate float64

	// Low and High are the pass-band edges in Hz.
	// They sit at the centre of their transition bands.
	Low, High float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64

	// TransitionWidth is the width of each transition band in Hz.
	TransitionWidth float64
}

// NewBandSpec returns a BandSpec with the default 65 dB / 0.2 Hz design targets.
func NewBandSpec(sampleRate, low, high float64) BandSpec {
	return BandSpec{
		SampleRate:      sampleRate,
		Low:             low,
		High:            high,
		Attenuation:     DefaultAttenuation,
		TransitionWidth: DefaultTransitionWidth,
	}
}

// Validate checks the band edges against the Nyquist frequency.
func (s BandSpec) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v Hz", ErrInvalidBand, s.SampleRate)
	}

	nyquist := s.SampleRate / windowNormalizationFactor
	if !(s.Low > 0) || !(s.High > s.Low) || !(s.High < nyquist) {
		return fmt.Errorf("%w: [%v, %v] Hz must satisfy 0 < low < high < %v Hz",
			ErrInvalidBand, s.Low, s.High, nyquist)
	}

	return nil
}

// NumTaps returns the tap count and Kaiser β the designer uses for a signal
// of signalLen samples.
//
// The Kaiser order estimate is capped at signalLen/3.5, forced odd, and
// raised to at least 3 taps when the cap leaves nothing usable.
func NumTaps(spec BandSpec, signalLen int) (numTaps int, beta float64, err error) {
	if err := spec.Validate(); err != nil {
		return 0, 0, err
	}

	width := spec.TransitionWidth / (spec.SampleRate / windowNormalizationFactor)
	numTaps, beta, err = mathutil.KaiserOrder(spec.Attenuation, width)
	if err != nil {
		return 0, 0, fmt.Errorf("kaiser order: %w", err)
	}

	if limit := float64(signalLen) / maxTapsDivisor; float64(numTaps) > limit {
		numTaps = int(limit)
	}
	numTaps |= 1

	if numTaps < minFilterTaps {
		numTaps = minFilterTaps
	}

	return numTaps, beta, nil
}

// Kernel is a designed linear-phase bandpass FIR filter.
type Kernel struct {
	// Coeffs holds the odd-length, symmetric impulse response.
	Coeffs []float64

	// Beta is the Kaiser window parameter used for the design.
	Beta float64

	// Spec is the design the kernel was built from.
	Spec BandSpec
}

// DesignBandpass designs a bandpass kernel for a signal of signalLen samples.
//
// This uses the windowed ideal response method:
//  1. Ideal bandpass impulse response: difference of two sinc lowpass filters
//  2. Truncate to NumTaps samples centred on the middle tap
//  3. Multiply by a Kaiser window
//  4. Scale so the gain at the centre of the pass band is exactly 1
func DesignBandpass(spec BandSpec, signalLen int) (*Kernel, error) {
	numTaps, beta, err := NumTaps(spec, signalLen)
	if err != nil {
		return nil, err
	}

	nyquist := spec.SampleRate / windowNormalizationFactor
	lo := spec.Low / nyquist
	hi := spec.High / nyquist

	window := KaiserWindow(numTaps, beta)
	coeffs := make([]float64, numTaps)
	center := float64(numTaps-1) / windowNormalizationFactor

	for n := range numTaps {
		m := float64(n) - center
		coeffs[n] = (hi*sinc(hi*m) - lo*sinc(lo*m)) * window[n]
	}

	// Unity gain at the pass-band centre.
	mid := (lo + hi) / windowNormalizationFactor
	carrier := make([]float64, numTaps)
	for n := range numTaps {
		carrier[n] = math.Cos(math.Pi * (float64(n) - center) * mid)
	}

	gain := f64.DotProduct(coeffs, carrier)
	if math.Abs(gain) > sincZeroThreshold {
		f64.Scale(coeffs, coeffs, 1.0/gain)
	}

	return &Kernel{Coeffs: coeffs, Beta: beta, Spec: spec}, nil
}

// NumTaps returns the kernel length.
func (k *Kernel) NumTaps() int {
	return len(k.Coeffs)
}

// sinc is the normalized sinc function sin(πx)/(πx).
func sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1.0
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}
