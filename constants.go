package sqi

// Score bounds
const (
	MinScore = 1.0 // very low quality
	MaxScore = 5.0 // very high quality
)

// MinSamples is the shortest accepted window. It is the smallest length for
// which the 3-tap minimum kernel gets its full 3-kernel reflection padding;
// shorter windows (even though N >= 2 is enough to compute a number) are
// rejected with ErrInvalidInput.
const MinSamples = 10

// Pass band of the preprocessing filter, isolating the cardiac band (Hz).
const (
	PassbandLow  = 0.4
	PassbandHigh = 3.0
)

// Stage one: device linear range of the optical density signals
const (
	linearRangeLow  = 0.04
	linearRangeHigh = 2.5
)

// Stage one: minimum ln(Σ|oxy| / Σ|dxy|) after filtering
const hbSumRatioThreshold = 0.67

// Stage two: 1/std of the autocorrelation difference above which a window
// is rated very high quality
const autocorrMetricThreshold = 40.0

// Stage three calibration. Fixed regression fit; not tunable.
const (
	regressionSlope     = 1.795613343002295
	regressionIntercept = 0.846108994828045
)
