package sqi

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/correlate"
	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/mathutil"
	"github.com/Artinis-Medical-Systems-B-V/SignalQualityIndex/internal/pipeline"
)

// window is the per-call state shared by the rating stages.
type window struct {
	input    Channels
	fs       float64
	filt     *filtered
	score    float64
	gate     Gate
	features Features
}

// exit ends the chain with a fixed verdict.
func (w *window) exit(gate Gate, score float64) (bool, error) {
	w.gate = gate
	w.score = score
	return true, nil
}

// ratingChain is the forward-only sequence of rating stages. It holds no
// per-call state and is shared by all callers.
var ratingChain = pipeline.MustNew[window](
	pipeline.NewStage(GateLinearRange.String(), checkLinearRange),
	pipeline.NewStage(GateFlatLine.String(), checkFlatLine),
	pipeline.NewStage("preprocess", runPreprocess),
	pipeline.NewStage(GateHbRatio.String(), checkHbRatio),
	pipeline.NewStage(GateAutocorrelation.String(), checkAutocorrelation),
	pipeline.NewStage(GateRegression.String(), scoreRegression),
)

func checkLinearRange(w *window) (bool, error) {
	if !mathutil.AllWithin(w.input.OD1, linearRangeLow, linearRangeHigh) ||
		!mathutil.AllWithin(w.input.OD2, linearRangeLow, linearRangeHigh) {
		return w.exit(GateLinearRange, MinScore)
	}
	return false, nil
}

func checkFlatLine(w *window) (bool, error) {
	if mathutil.IsFlat(w.input.OD1) || mathutil.IsFlat(w.input.OD2) {
		return w.exit(GateFlatLine, MinScore)
	}
	return false, nil
}

func runPreprocess(w *window) (bool, error) {
	f, err := preprocess(w.input, w.fs)
	if err != nil {
		return false, err
	}
	w.filt = f
	w.features.NumTaps = f.numTaps
	return false, nil
}

// checkHbRatio rejects windows whose O2Hb and HHb energies are implausibly
// close. A NaN ratio (both sums zero) does not fail the gate.
func checkHbRatio(w *window) (bool, error) {
	ratio := math.Log(mathutil.SumAbs(w.filt.oxy) / mathutil.SumAbs(w.filt.dxy))
	w.features.HbSumRatio = ratio
	if ratio < hbSumRatioThreshold {
		return w.exit(GateHbRatio, MinScore)
	}
	return false, nil
}

// checkAutocorrelation accepts windows whose two wavelengths share the same
// periodic structure. Identical autocorrelations give +Inf and pass; a
// zero-energy channel gives NaN and falls through to the regression.
func checkAutocorrelation(w *window) (bool, error) {
	diff := correlate.AutoNormalized(w.filt.od1)
	floats.Sub(diff, correlate.AutoNormalized(w.filt.od2))

	metric := 1 / mathutil.PopStdDev(diff)
	w.features.AutocorrMetric = metric
	if metric > autocorrMetricThreshold {
		return w.exit(GateAutocorrelation, MaxScore)
	}
	return false, nil
}

func scoreRegression(w *window) (bool, error) {
	logStd := math.Log(mathutil.PopStdDev(w.filt.oxy) / mathutil.PopStdDev(w.filt.dxy))
	w.features.LogStdHb = logStd
	return w.exit(GateRegression, regressionScore(logStd))
}

// regressionScore maps ln(std(oxy)/std(dxy)) to a clamped quality score.
func regressionScore(logStdHb float64) float64 {
	return clampScore(logStdHb*regressionSlope + regressionIntercept)
}
