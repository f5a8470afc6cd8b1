package filter

import (
	"fmt"
)

const (
	// padFactor sets the reflection padding to 3 kernel lengths.
	padFactor = 3

	minSignalLen = 2
)

// ApplyZeroPhase filters x forward and then backward with the kernel, so
// the result has no net phase shift and the kernel's magnitude response is
// applied twice. The returned slice has the same length as x.
//
// The signal is first extended at both ends by odd reflection about its end
// samples, 3·NumTaps long or N-1 if the signal is shorter. Each pass starts
// in steady state, as if the input had been constant at its first sample
// forever, which suppresses the start-up transient.
func (k *Kernel) ApplyZeroPhase(x []float64) ([]float64, error) {
	n := len(x)
	if n < minSignalLen {
		return nil, fmt.Errorf("%w: %d samples (minimum %d)", ErrSignalTooShort, n, minSignalLen)
	}

	padLen := min(padFactor*len(k.Coeffs), n-1)
	ext := oddExtend(x, padLen)

	// Time-reversed kernel: the convolvers compute Σ x[i+j]·h[j].
	reversed := make([]float64, len(k.Coeffs))
	for i, c := range k.Coeffs {
		reversed[len(reversed)-1-i] = c
	}
	conv := newConvolver(reversed)

	forward := conv.filterSteady(ext)
	reverseInPlace(forward)

	backward := conv.filterSteady(forward)
	reverseInPlace(backward)

	out := make([]float64, n)
	copy(out, backward[padLen:padLen+n])

	return out, nil
}

// filterSteady runs the causal FIR filter over x with every sample before
// x[0] taken to equal x[0].
func (c *convolver) filterSteady(x []float64) []float64 {
	history := c.kernelLen - 1

	padded := make([]float64, len(x)+history)
	for i := range history {
		padded[i] = x[0]
	}
	copy(padded[history:], x)

	out := make([]float64, len(x))
	c.convolveValid(out, padded)

	return out
}

// oddExtend reflects x about its first and last samples:
//
//	2·x[0] - x[padLen..1], x, 2·x[n-1] - x[n-2..n-1-padLen]
func oddExtend(x []float64, padLen int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*padLen)

	for i := range padLen {
		ext[i] = 2*x[0] - x[padLen-i]
		ext[padLen+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[padLen:], x)

	return ext
}

func reverseInPlace(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
