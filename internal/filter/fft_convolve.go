package filter

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Kernels at least this long are filtered by FFT; shorter ones directly.
	minKernelForFFT = 400

	// Smallest transform used by the block convolver.
	minBlockFFTSize = 512
)

// convolver computes dst[i] = Σ signal[i+j]·kernel[j] for every i where the
// kernel fits inside the signal.
type convolver struct {
	kernel    []float64
	kernelLen int
	blocks    *blockConvolver // nil for direct convolution
}

func newConvolver(kernel []float64) *convolver {
	c := &convolver{kernel: kernel, kernelLen: len(kernel)}
	if len(kernel) >= minKernelForFFT {
		c.blocks = newBlockConvolver(kernel)
	}
	return c
}

func (c *convolver) convolveValid(dst, signal []float64) {
	if c.blocks != nil {
		c.blocks.convolveValid(dst, signal)
		return
	}
	f64.ConvolveValid(dst, signal, c.kernel)
}

// blockConvolver is an overlap-save FFT convolver. Each block of size
// samples yields size-kernelLen+1 outputs; the first kernelLen-1 samples of
// every inverse transform are wrapped and discarded.
//
// It keeps scratch buffers and is not safe for concurrent use.
type blockConvolver struct {
	fft       *fourier.FFT
	size      int
	kernelLen int
	spectrum  []complex128 // transform of the reversed, zero-padded kernel

	block   []float64
	coeffs  []complex128
	product []complex128
	seq     []float64
}

func newBlockConvolver(kernel []float64) *blockConvolver {
	k := len(kernel)
	if k == 0 {
		return nil
	}

	size := minBlockFFTSize
	for size < 2*k {
		size *= 2
	}
	fft := fourier.NewFFT(size)

	// Circular convolution with the reversed kernel is the sliding
	// product Σ x[n+j]·h[j], delayed by k-1 samples.
	reversed := make([]float64, size)
	for i, h := range kernel {
		reversed[k-1-i] = h
	}

	bins := size/2 + 1
	return &blockConvolver{
		fft:       fft,
		size:      size,
		kernelLen: k,
		spectrum:  fft.Coefficients(nil, reversed),
		block:     make([]float64, size),
		coeffs:    make([]complex128, bins),
		product:   make([]complex128, bins),
		seq:       make([]float64, size),
	}
}

// convolveValid writes len(signal)-kernelLen+1 outputs to dst. It writes
// nothing if dst is too short or the signal is shorter than the kernel.
func (b *blockConvolver) convolveValid(dst, signal []float64) {
	outLen := len(signal) - b.kernelLen + 1
	if outLen <= 0 || len(dst) < outLen {
		return
	}

	wrap := b.kernelLen - 1
	step := b.size - wrap
	norm := 1 / float64(b.size)

	for start := 0; start < outLen; start += step {
		clear(b.block)
		copy(b.block, signal[start:min(start+b.size, len(signal))])

		b.coeffs = b.fft.Coefficients(b.coeffs, b.block)
		c128.Mul(b.product, b.coeffs, b.spectrum)
		b.seq = b.fft.Sequence(b.seq, b.product)

		n := min(step, outLen-start)
		f64.Scale(dst[start:start+n], b.seq[wrap:wrap+n], norm)
	}
}
