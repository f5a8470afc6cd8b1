package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/testutil"
)

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expected    float64
	}{
		{"below 21dB", 20.0, 0.0},
		{"exactly 21dB", 21.0, 0.0},
		{"50dB medium branch", 50.0, 4.533514120981248},
		{"65dB high branch", 65.0, 6.20426},
		{"100dB", 100.0, 10.06126},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, KaiserBeta(tt.attenuation), 1e-9)
		})
	}
}

func TestKaiserBeta_Monotonic(t *testing.T) {
	prevBeta := KaiserBeta(20.0)
	for att := 25.0; att <= 150.0; att += 5.0 {
		beta := KaiserBeta(att)
		assert.GreaterOrEqual(t, beta, prevBeta, "att=%v", att)
		prevBeta = beta
	}
}

func TestKaiserOrder(t *testing.T) {
	tests := []struct {
		name     string
		ripple   float64
		width    float64
		wantTaps int
	}{
		// 0.2 Hz transition at 10 Hz sampling
		{"fs 10Hz", 65, 0.04, 200},
		{"fs 25Hz", 65, 0.016, 498},
		{"fs 50Hz", 65, 0.008, 995},
		{"negative ripple sign ignored", -65, 0.1, 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taps, beta, err := KaiserOrder(tt.ripple, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTaps, taps)
			assert.InDelta(t, 6.20426, beta, 1e-9)
		})
	}
}

func TestKaiserOrder_Errors(t *testing.T) {
	_, _, err := KaiserOrder(5, 0.1)
	require.ErrorIs(t, err, ErrAttenuationTooLow)

	_, _, err = KaiserOrder(65, 0)
	require.ErrorIs(t, err, ErrInvalidWidth)

	_, _, err = KaiserOrder(65, -0.1)
	require.ErrorIs(t, err, ErrInvalidWidth)
}

func TestKaiserOrder_WiderTransitionFewerTaps(t *testing.T) {
	prev := 1 << 30
	for _, w := range []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2} {
		taps, _, err := KaiserOrder(65, w)
		require.NoError(t, err)
		testutil.AssertInRange(t, float64(taps), 1, float64(prev))
		prev = taps
	}
}

func BenchmarkKaiserOrder(b *testing.B) {
	for b.Loop() {
		_, _, _ = KaiserOrder(65, 0.008)
	}
}
