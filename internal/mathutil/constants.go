package mathutil

// Bessel I₀ power series limits.
const (
	// (x/2)² = x²/4
	besselSeriesQuarter = 4.0

	// Stop when a term falls below this fraction of the sum.
	besselRelTolerance = 1e-17

	// Enough for |x| up to about 700, where I₀ overflows.
	besselMaxTerms = 1000
)

// Kaiser window design constants (Kaiser & Schafer, "On the use of the I0-sinh
// window for spectrum analysis", 1980; Oppenheim & Schafer eq. 7.62-7.63).
const (
	// Attenuation breakpoints for β (dB)
	kaiserAttHigh   = 50.0
	kaiserAttMedium = 21.0

	kaiserBetaHighCoeff = 0.1102
	kaiserBetaHighShift = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	// Order estimate: N = (A - 7.95) / (2.285·π·Δω) + 1
	kaiserOrderOffset     = 7.95
	kaiserOrderMultiplier = 2.285

	// Below this attenuation the order formula is not valid.
	kaiserMinAttenuation = 8.0
)
