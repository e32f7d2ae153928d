package size

import (
	"math"
	"strconv"
	"strings"
)

// displayString picks the human-facing rendering for a normalized value.
// UK shoppers reason in pints for milk-sized volumes, so exact pint
// multiples inside the locale window render as pints even when the input
// was metric; larger volumes switch to litres, weights to kilograms.
func (lc *Locale) displayString(normalized float64, conv Conversion) string {
	switch conv.Category {
	case CategoryVolume:
		return lc.displayVolume(normalized)
	case CategoryWeight:
		return displayWeight(normalized)
	default:
		// Count sizes keep the unit their token mapped to; no rescaling.
		return formatNumber(normalized) + string(conv.Unit)
	}
}

func (lc *Locale) displayVolume(normalized float64) string {
	if isMultipleOf(normalized, lc.PintML) &&
		normalized >= lc.PintWindowMin && normalized <= lc.PintWindowMax {
		return formatNumber(normalized/lc.PintML) + string(UnitPt)
	}
	if normalized >= 1000 {
		return formatNumber(normalized/1000) + string(UnitL)
	}
	return formatNumber(normalized) + string(UnitMl)
}

func displayWeight(normalized float64) string {
	if normalized >= 1000 {
		return formatNumber(normalized/1000) + string(UnitKg)
	}
	return formatNumber(normalized) + string(UnitG)
}

// formatNumber renders whole numbers without decimals and everything else
// with one decimal place, stripping a trailing ".0" rounding artifact.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}
