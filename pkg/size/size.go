// Package size parses free-form product size strings ("2 pints", "500ml",
// "6 x 500ml", "1.5kg") into a canonical representation, converts across
// unit families, computes price-per-unit figures, and finds the closest
// equivalent package when the same product is sized differently between
// stores.
//
// Every operation is a pure function of its inputs: no state is held
// between calls, nothing blocks, and no input ever panics. Unparseable
// input resolves to an explicit absence value (nil Parsed, ok=false)
// rather than an error.
//
// All operations are available as methods on a Locale and as package
// functions bound to the UK locale.
package size

var defaultLocale = UK()

// Parse parses a size string using the UK locale. See Locale.Parse.
func Parse(input string) *Parsed {
	return defaultLocale.Parse(input)
}

// PricePerUnit computes a unit price using the UK locale.
// See Locale.PricePerUnit.
func PricePerUnit(price float64, sizeText string) (float64, bool) {
	return defaultLocale.PricePerUnit(price, sizeText)
}

// FormatPricePerUnit formats a unit price using the UK locale.
// See Locale.FormatPricePerUnit.
func FormatPricePerUnit(unitPrice float64, category Category) string {
	return defaultLocale.FormatPricePerUnit(unitPrice, category)
}

// FindClosestSize ranks candidates against a target using the UK locale.
// See Locale.FindClosestSize.
func FindClosestSize(target string, candidates []string, tolerance float64) MatchResult {
	return defaultLocale.FindClosestSize(target, candidates, tolerance)
}

// AreSizesEquivalent reports size equivalence using the UK locale.
// See Locale.AreSizesEquivalent.
func AreSizesEquivalent(a, b string) bool {
	return defaultLocale.AreSizesEquivalent(a, b)
}

// RankByValue sorts sizes ascending by normalized value using the UK
// locale. See Locale.RankByValue.
func RankByValue(sizes []string) []string {
	return defaultLocale.RankByValue(sizes)
}

// GroupByCategory buckets sizes by category using the UK locale.
// See Locale.GroupByCategory.
func GroupByCategory(sizes []string) Grouped {
	return defaultLocale.GroupByCategory(sizes)
}

// SuggestStandardSize picks the most standard size using the UK locale.
// See Locale.SuggestStandardSize.
func SuggestStandardSize(sizes []string, category Category) (string, bool) {
	return defaultLocale.SuggestStandardSize(sizes, category)
}
