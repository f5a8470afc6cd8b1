// Package correlate computes full-length autocorrelation sequences.
package correlate

import (
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minFFTSize keeps tiny inputs on a reasonable transform length.
const minFFTSize = 16

// Auto computes the full autocorrelation of x.
// The result has length 2*len(x) - 1 and index k corresponds to lag
// k - (len(x) - 1), so the zero-lag value sits in the middle:
//
//	r[k] = Σ x[n]·x[n + k - (len(x)-1)]
//
// It is computed as IFFT(|FFT(x)|²) on a zero-padded transform long enough
// to avoid circular wrap.
func Auto(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return []float64{}
	}

	outLen := 2*n - 1
	fftSize := minFFTSize
	for fftSize < outLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	padded := make([]float64, fftSize)
	copy(padded, x)

	spectrum := fft.Coefficients(nil, padded)
	for i, c := range spectrum {
		re, im := real(c), imag(c)
		spectrum[i] = complex(re*re+im*im, 0)
	}

	circular := fft.Sequence(nil, spectrum)
	// gonum's inverse transform is unnormalized
	f64.Scale(circular, circular, 1.0/float64(fftSize))

	out := make([]float64, outLen)
	for k := range outLen {
		lag := k - (n - 1)
		if lag < 0 {
			lag += fftSize
		}
		out[k] = circular[lag]
	}

	return out
}

// AutoNormalized returns Auto(x) divided by the signal energy Σx², so the
// zero-lag value is 1. A zero-energy input yields NaN values.
func AutoNormalized(x []float64) []float64 {
	out := Auto(x)
	if len(out) == 0 {
		return out
	}

	energy := f64.DotProduct(x, x)
	for i := range out {
		out[i] /= energy
	}

	return out
}
