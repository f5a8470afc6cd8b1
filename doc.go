// Package sqi rates the quality of near-infrared spectroscopy (NIRS) signals.
//
// [ComputeQualityScore] takes one fixed-length window of four channels (two
// optical densities and the derived O2Hb and HHb concentration changes) and
// returns a score from 1 (very low quality) to 5 (very high quality). It is
// meant to flag unreliable windows before hemodynamic analysis; the
// algorithm was validated on 10 second windows.
//
// # Quick Start
//
//	score, err := sqi.ComputeQualityScore(od1, od2, oxy, dxy, 50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Use [Evaluate] to also learn which stage decided the score and the
// feature values it computed:
//
//	res, err := sqi.Evaluate(sqi.Channels{OD1: od1, OD2: od2, Oxy: oxy, Dxy: dxy}, 50)
//	fmt.Println(res.Score, res.Gate, res.Features.LogStdHb)
//
// # Rating Stages
//
// The window passes through three rating stages in order, and each may end
// the evaluation early:
//
//  1. Very low quality (score 1): an optical density sample outside the
//     device linear range [0.04, 2.5], a flat optical density channel, or,
//     after filtering, ln(Σ|O2Hb| / Σ|HHb|) below 0.67.
//  2. Very high quality (score 5): the energy-normalized autocorrelations of
//     the two filtered optical densities are nearly identical, that is
//     1/std(difference) exceeds 40.
//  3. Regression: score = 1.7956·ln(std(O2Hb)/std(HHb)) + 0.8461, clamped
//     to [1, 5].
//
// Between the range checks and the ratio check, all four channels are
// linearly detrended and band-pass filtered to 0.4-3 Hz with a Kaiser
// window FIR filter applied forward and backward, so no phase shift is
// introduced.
//
// # Input Requirements
//
// All four channels must have the same length of at least [MinSamples]
// finite samples, and the sampling rate must be positive with a Nyquist
// frequency above 3 Hz. Violations return [ErrInvalidInput]. Degenerate but
// well-formed signals are not errors; they score 1.
//
// # Thread Safety
//
// Scoring is a pure function with no shared state; windows may be scored
// concurrently from any number of goroutines.
//
// # Attribution
//
// The algorithm is described in M. S. Sappia, N. Hakimi, W. N. J. M. Colier
// and J. M. Horschig, "Signal quality index: an algorithm for quantitative
// assessment of functional near infrared spectroscopy signal quality",
// Biomed. Opt. Express 11, 6732-6754 (2020).
package sqi
