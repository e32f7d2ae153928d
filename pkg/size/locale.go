package size

import "math"

// Locale carries the market-specific heuristics: preferred display units,
// the common package sizes used by the standard-size suggester, and the
// currency symbol used when formatting price-per-unit figures.
//
// The conversion table itself is locale-independent; only presentation and
// preference data live here, so adding a market means adding a Locale
// value, not new parser branches.
type Locale struct {
	// PintML is the millilitre content of one local pint.
	PintML float64
	// PintWindowMin/Max bound the normalized volumes rendered in pints.
	// Outside the window, litres or millilitres are used instead.
	PintWindowMin float64
	PintWindowMax float64

	// CommonVolumes, CommonWeights, and CommonCounts are the package sizes
	// shoppers expect on a shelf. Volumes and weights are normalized (ml,
	// g); counts are literal quantities.
	CommonVolumes []float64
	CommonWeights []float64
	CommonCounts  []float64

	// Currency is the symbol prefixed to formatted price-per-unit strings.
	Currency string
}

// UK returns the United Kingdom locale: pints for 1-6 pint volumes,
// standard UK grocery pack sizes, sterling.
func UK() *Locale {
	return &Locale{
		PintML:        mlPerUKPint,
		PintWindowMin: 1 * mlPerUKPint,
		PintWindowMax: 6 * mlPerUKPint,
		// 1pt, 1L, 2pt, 2L, 4pt
		CommonVolumes: []float64{568, 1000, 1136, 2000, 2272},
		CommonWeights: []float64{250, 400, 500, 800, 1000},
		CommonCounts:  []float64{4, 6, 8, 10, 12},
		Currency:      "£",
	}
}

// floatEpsilon absorbs binary floating point noise when testing whether a
// normalized value sits exactly on a multiple or a known package size.
const floatEpsilon = 1e-9

func isMultipleOf(value, of float64) bool {
	if of <= 0 {
		return false
	}
	r := math.Mod(value, of)
	return r < floatEpsilon || of-r < floatEpsilon
}

func containsValue(set []float64, value float64) bool {
	for _, v := range set {
		if math.Abs(v-value) < floatEpsilon {
			return true
		}
	}
	return false
}
