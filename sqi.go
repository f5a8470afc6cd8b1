package sqi

import (
	"errors"
	"fmt"
	"math"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/filter"
)

// ErrInvalidInput indicates a window or sampling rate that cannot be scored.
var ErrInvalidInput = errors.New("invalid input")

// Channels holds one window of the four signals of a NIRS channel.
// All four slices must have the same length.
type Channels struct {
	OD1 []float64 // optical density at the higher wavelength
	OD2 []float64 // optical density at the lower wavelength
	Oxy []float64 // O2Hb concentration change
	Dxy []float64 // HHb concentration change
}

// Len returns the number of samples in OD1.
func (c Channels) Len() int {
	return len(c.OD1)
}

// Validate checks the window and sampling rate against the scoring
// preconditions. Every violation wraps ErrInvalidInput.
func (c Channels) Validate(samplingRateHz float64) error {
	n := len(c.OD1)
	if len(c.OD2) != n || len(c.Oxy) != n || len(c.Dxy) != n {
		return fmt.Errorf("%w: channel lengths differ (od1=%d od2=%d oxy=%d dxy=%d)",
			ErrInvalidInput, len(c.OD1), len(c.OD2), len(c.Oxy), len(c.Dxy))
	}
	if n < MinSamples {
		return fmt.Errorf("%w: %d samples, need at least %d", ErrInvalidInput, n, MinSamples)
	}

	if math.IsNaN(samplingRateHz) || math.IsInf(samplingRateHz, 0) || samplingRateHz <= 0 {
		return fmt.Errorf("%w: sampling rate %v Hz must be positive and finite",
			ErrInvalidInput, samplingRateHz)
	}
	if err := filter.NewBandSpec(samplingRateHz, PassbandLow, PassbandHigh).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	for _, ch := range []struct {
		name string
		data []float64
	}{
		{"od1", c.OD1},
		{"od2", c.OD2},
		{"oxy", c.Oxy},
		{"dxy", c.Dxy},
	} {
		if i := firstNonFinite(ch.data); i >= 0 {
			return fmt.Errorf("%w: %s[%d] = %v is not finite", ErrInvalidInput, ch.name, i, ch.data[i])
		}
	}

	return nil
}

func firstNonFinite(x []float64) int {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}

// Gate identifies the stage that decided a score.
type Gate int

const (
	// GateUnknown is the zero value; no evaluated Result carries it.
	GateUnknown Gate = iota

	// GateLinearRange: an optical density sample lies outside [0.04, 2.5]. Score 1.
	GateLinearRange

	// GateFlatLine: an optical density channel is constant. Score 1.
	GateFlatLine

	// GateHbRatio: ln(Σ|oxy| / Σ|dxy|) of the filtered signals is below 0.67. Score 1.
	GateHbRatio

	// GateAutocorrelation: the optical density autocorrelations match closely. Score 5.
	GateAutocorrelation

	// GateRegression: the score comes from the log std ratio regression.
	GateRegression
)

// String returns the stage name of the gate.
func (g Gate) String() string {
	switch g {
	case GateLinearRange:
		return "linear-range"
	case GateFlatLine:
		return "flat-line"
	case GateHbRatio:
		return "hb-ratio"
	case GateAutocorrelation:
		return "autocorrelation"
	case GateRegression:
		return "regression"
	default:
		return fmt.Sprintf("Gate(%d)", int(g))
	}
}

// Features holds the values computed while rating a window. Features of
// stages that were never reached are NaN (NumTaps is 0).
type Features struct {
	// NumTaps is the length of the band-pass kernel.
	NumTaps int

	// HbSumRatio is ln(Σ|oxy| / Σ|dxy|) of the filtered signals.
	HbSumRatio float64

	// AutocorrMetric is 1/std of the difference between the normalized
	// autocorrelations of the filtered optical densities.
	AutocorrMetric float64

	// LogStdHb is ln(std(oxy) / std(dxy)) of the filtered signals.
	LogStdHb float64
}

func newFeatures() Features {
	return Features{
		HbSumRatio:     math.NaN(),
		AutocorrMetric: math.NaN(),
		LogStdHb:       math.NaN(),
	}
}

// Result is the outcome of rating one window.
type Result struct {
	Score    float64 // in [MinScore, MaxScore]
	Gate     Gate
	Features Features
}

// Evaluate rates one window and reports which stage decided the score.
// Score is identical to what ComputeQualityScore returns for the same input.
func Evaluate(ch Channels, samplingRateHz float64) (Result, error) {
	if err := ch.Validate(samplingRateHz); err != nil {
		return Result{}, err
	}

	w := &window{
		input:    ch,
		fs:       samplingRateHz,
		features: newFeatures(),
	}
	if _, err := ratingChain.Run(w); err != nil {
		return Result{}, fmt.Errorf("rating window: %w", err)
	}

	return Result{Score: w.score, Gate: w.gate, Features: w.features}, nil
}

// ComputeQualityScore rates one window of NIRS data from 1 (very low
// quality) to 5 (very high quality).
//
// od1 and od2 are the optical densities at the higher and lower wavelength,
// oxy and dxy the O2Hb and HHb concentration changes. All four must have
// the same length of at least MinSamples (10) finite values, and
// samplingRateHz must be positive with a Nyquist frequency above 3 Hz;
// otherwise the returned error wraps ErrInvalidInput. The length limit is
// stricter than the N >= 2 a bare computation would accept: windows of 2-9
// samples cannot be zero-phase filtered with full edge padding and are
// rejected instead of scored. The inputs are not modified.
func ComputeQualityScore(od1, od2, oxy, dxy []float64, samplingRateHz float64) (float64, error) {
	res, err := Evaluate(Channels{OD1: od1, OD2: od2, Oxy: oxy, Dxy: dxy}, samplingRateHz)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// clampScore limits a regression output to [MinScore, MaxScore]. NaN maps
// to MinScore.
func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return MinScore
	}
	return math.Min(math.Max(score, MinScore), MaxScore)
}
