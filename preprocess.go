package sqi

import (
	"fmt"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/filter"
	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/mathutil"
)

// filtered holds the detrended, band-passed channels of a window.
type filtered struct {
	od1, od2, oxy, dxy []float64
	numTaps            int
}

// preprocess detrends every channel and band-passes it to the cardiac band
// with a zero-phase Kaiser FIR filter. One kernel serves all four channels.
func preprocess(ch Channels, fs float64) (*filtered, error) {
	kernel, err := filter.DesignBandpass(filter.NewBandSpec(fs, PassbandLow, PassbandHigh), ch.Len())
	if err != nil {
		return nil, fmt.Errorf("designing band-pass: %w", err)
	}

	out := &filtered{numTaps: kernel.NumTaps()}
	for _, c := range []struct {
		name string
		src  []float64
		dst  *[]float64
	}{
		{"od1", ch.OD1, &out.od1},
		{"od2", ch.OD2, &out.od2},
		{"oxy", ch.Oxy, &out.oxy},
		{"dxy", ch.Dxy, &out.dxy},
	} {
		y, err := kernel.ApplyZeroPhase(mathutil.Detrend(c.src))
		if err != nil {
			return nil, fmt.Errorf("filtering %s: %w", c.name, err)
		}
		*c.dst = y
	}

	return out, nil
}
