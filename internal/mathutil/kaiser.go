package mathutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrAttenuationTooLow is returned when the requested stopband attenuation is
// outside the range where Kaiser's order formula holds.
var ErrAttenuationTooLow = errors.New("attenuation too low for Kaiser order estimate")

// ErrInvalidWidth is returned for a non-positive transition width.
var ErrInvalidWidth = errors.New("transition width must be positive")

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - For att > 50 dB: β = 0.1102 * (att - 8.7)
//   - For 21 dB < att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - For att ≤ 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighShift)
	case attenuation > kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}

// KaiserOrder estimates the number of taps and the window β needed for a
// Kaiser-windowed FIR filter to meet the given ripple and transition width.
//
// Parameters:
//
//	ripple: stopband attenuation in dB (sign ignored, must be at least 8 dB)
//	width:  transition width normalized to Nyquist (1.0 = Nyquist)
//
// The tap count is
//
//	N = ceil((A - 7.95) / (2.285 * π * width) + 1)
//
// and is not forced odd; callers that need a type I filter adjust it themselves.
func KaiserOrder(ripple, width float64) (numTaps int, beta float64, err error) {
	att := math.Abs(ripple)
	if att < kaiserMinAttenuation {
		return 0, 0, fmt.Errorf("%w: %.2f dB (minimum %.0f dB)", ErrAttenuationTooLow, att, kaiserMinAttenuation)
	}
	if !(width > 0) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidWidth, width)
	}

	beta = KaiserBeta(att)
	n := (att-kaiserOrderOffset)/kaiserOrderMultiplier/(math.Pi*width) + 1

	return int(math.Ceil(n)), beta, nil
}
