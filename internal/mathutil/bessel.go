// Package mathutil provides the special functions and Kaiser design formulas
// used by the FIR filter designer, plus small statistics helpers shared by the
// quality stages.
package mathutil

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
// It is the building block of the Kaiser window.
//
// It sums the power series I₀(x) = Σ ((x/2)^k / k!)², stopping once a term
// no longer changes the sum. All terms are positive, so the result is
// accurate to near machine precision. Kaiser β values need about 20 terms.
func BesselI0(x float64) float64 {
	q := x * x / besselSeriesQuarter

	sum, term := 1.0, 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		term *= q / float64(k*k)
		sum += term
		if term <= sum*besselRelTolerance {
			break
		}
	}

	return sum
}
