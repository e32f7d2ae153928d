package size

import "github.com/shopspring/decimal"

// Base-unit quantity that volume and weight unit prices are quoted per,
// following the UK unit-pricing convention (£/100ml, £/100g).
const pricePerBaseUnits = 100

// PricePerUnit derives a comparable unit price from a money amount and a
// free-form size string. Count sizes price per item using the literal
// entered quantity; volume and weight sizes price per 100 base units.
// ok is false when the size cannot be parsed or has a zero magnitude;
// callers must treat that as "unknown", never as zero.
func (lc *Locale) PricePerUnit(price float64, sizeText string) (float64, bool) {
	p := lc.Parse(sizeText)
	if p == nil {
		return 0, false
	}

	if p.Category == CategoryCount {
		if p.Value <= 0 {
			return 0, false
		}
		return price / p.Value, true
	}

	if p.Normalized <= 0 {
		return 0, false
	}
	return price / p.Normalized * pricePerBaseUnits, true
}

// FormatPricePerUnit renders a unit price for display: currency symbol,
// then the amount with two decimal places (three below one penny, so tiny
// per-ml prices stay legible), then the category's pricing basis.
func (lc *Locale) FormatPricePerUnit(unitPrice float64, category Category) string {
	places := int32(2)
	if unitPrice < 0.01 {
		places = 3
	}
	amount := decimal.NewFromFloat(unitPrice).StringFixed(places)
	return lc.Currency + amount + perUnitSuffix(category)
}

func perUnitSuffix(category Category) string {
	switch category {
	case CategoryVolume:
		return "/100ml"
	case CategoryWeight:
		return "/100g"
	default:
		return "/each"
	}
}
