package size

import "strings"

// Category is the unit family of a size. Sizes are only comparable within
// the same category.
type Category string

// Category constants.
const (
	CategoryVolume Category = "volume"
	CategoryWeight Category = "weight"
	CategoryCount  Category = "count"
)

// Unit is a canonical display unit. It is distinct from the base unit used
// for numeric comparison: normalized values are always ml, g, or a count
// of 1, regardless of the display unit.
type Unit string

// Canonical unit constants.
const (
	UnitMl Unit = "ml"
	UnitL  Unit = "l"
	UnitPt Unit = "pt"

	UnitG  Unit = "g"
	UnitKg Unit = "kg"
	UnitOz Unit = "oz"
	UnitLb Unit = "lb"

	UnitPk   Unit = "pk"
	UnitEach Unit = "each"
)

// Conversion maps one recognized unit token to the category base unit.
// Factor converts one token unit into ml (volume), g (weight), or a count
// of 1 (count).
type Conversion struct {
	Factor   float64
	Unit     Unit
	Category Category
}

// Exact imperial conversion constants.
const (
	mlPerUKPint = 568.0
	gPerOunce   = 28.349523125
	gPerPound   = 453.59237
)

// unitTable is the only stringly-typed boundary in the package. Tokens are
// matched after trimming, lowercasing, and whitespace collapsing, so each
// entry is stored in that normalized form.
var unitTable = map[string]Conversion{
	// Volume (base: ml)
	"ml":          {Factor: 1, Unit: UnitMl, Category: CategoryVolume},
	"millilitre":  {Factor: 1, Unit: UnitMl, Category: CategoryVolume},
	"millilitres": {Factor: 1, Unit: UnitMl, Category: CategoryVolume},
	"milliliter":  {Factor: 1, Unit: UnitMl, Category: CategoryVolume},
	"milliliters": {Factor: 1, Unit: UnitMl, Category: CategoryVolume},
	"l":           {Factor: 1000, Unit: UnitL, Category: CategoryVolume},
	"litre":       {Factor: 1000, Unit: UnitL, Category: CategoryVolume},
	"litres":      {Factor: 1000, Unit: UnitL, Category: CategoryVolume},
	"liter":       {Factor: 1000, Unit: UnitL, Category: CategoryVolume},
	"liters":      {Factor: 1000, Unit: UnitL, Category: CategoryVolume},
	"pt":          {Factor: mlPerUKPint, Unit: UnitPt, Category: CategoryVolume},
	"pint":        {Factor: mlPerUKPint, Unit: UnitPt, Category: CategoryVolume},
	"pints":       {Factor: mlPerUKPint, Unit: UnitPt, Category: CategoryVolume},

	// Weight (base: g)
	"g":         {Factor: 1, Unit: UnitG, Category: CategoryWeight},
	"gram":      {Factor: 1, Unit: UnitG, Category: CategoryWeight},
	"grams":     {Factor: 1, Unit: UnitG, Category: CategoryWeight},
	"gr":        {Factor: 1, Unit: UnitG, Category: CategoryWeight},
	"kg":        {Factor: 1000, Unit: UnitKg, Category: CategoryWeight},
	"kilo":      {Factor: 1000, Unit: UnitKg, Category: CategoryWeight},
	"kilos":     {Factor: 1000, Unit: UnitKg, Category: CategoryWeight},
	"kilogram":  {Factor: 1000, Unit: UnitKg, Category: CategoryWeight},
	"kilograms": {Factor: 1000, Unit: UnitKg, Category: CategoryWeight},
	"oz":        {Factor: gPerOunce, Unit: UnitOz, Category: CategoryWeight},
	"ounce":     {Factor: gPerOunce, Unit: UnitOz, Category: CategoryWeight},
	"ounces":    {Factor: gPerOunce, Unit: UnitOz, Category: CategoryWeight},
	"lb":        {Factor: gPerPound, Unit: UnitLb, Category: CategoryWeight},
	"lbs":       {Factor: gPerPound, Unit: UnitLb, Category: CategoryWeight},
	"pound":     {Factor: gPerPound, Unit: UnitLb, Category: CategoryWeight},
	"pounds":    {Factor: gPerPound, Unit: UnitLb, Category: CategoryWeight},

	// Count (base: 1)
	"pk":     {Factor: 1, Unit: UnitPk, Category: CategoryCount},
	"pack":   {Factor: 1, Unit: UnitPk, Category: CategoryCount},
	"packs":  {Factor: 1, Unit: UnitPk, Category: CategoryCount},
	"each":   {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"ea":     {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"unit":   {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"units":  {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"piece":  {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"pieces": {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"item":   {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"items":  {Factor: 1, Unit: UnitEach, Category: CategoryCount},
	"pcs":    {Factor: 1, Unit: UnitEach, Category: CategoryCount},
}

// LookupUnit returns the conversion for a unit token. Lookup is
// case-insensitive on a trimmed, whitespace-collapsed token.
func LookupUnit(token string) (Conversion, bool) {
	conv, ok := unitTable[normalizeToken(token)]
	return conv, ok
}

// UnitTokens returns all recognized unit tokens in no particular order.
func UnitTokens() []string {
	tokens := make([]string, 0, len(unitTable))
	for t := range unitTable {
		tokens = append(tokens, t)
	}
	return tokens
}

func normalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
