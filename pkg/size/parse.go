package size

import (
	"strconv"
	"strings"
)

// Parsed is the result of parsing a free-form size string.
//
// Value and Unit reflect what the user entered (with the unit token
// canonicalized); Normalized is the magnitude in the category base unit
// (ml, g, or a count of 1) and is the only field ever compared across
// sizes. Display is re-derived from the normalized value by the locale
// heuristic, so it may use a different unit than the input ("1136ml"
// displays as "2pt"). Original preserves the raw input verbatim.
type Parsed struct {
	Value      float64  `json:"value"`
	Unit       Unit     `json:"unit"`
	Category   Category `json:"category"`
	Normalized float64  `json:"normalized_value"`
	Display    string   `json:"display"`
	Original   string   `json:"original"`
}

// Parse turns a raw size string into a Parsed, or nil if the input cannot
// be understood. It accepts the simple form ("500ml", "2 pints", "6-pack")
// and the multiplicative form ("6 x 500ml"). Parse is total: no input
// panics, malformed input yields nil.
func (lc *Locale) Parse(input string) *Parsed {
	norm := normalizeToken(input)
	if norm == "" {
		return nil
	}
	if p := lc.parseSimple(norm, input); p != nil {
		return p
	}
	return lc.parseMultiplicative(norm, input)
}

// parseSimple handles <number><optional separator><unit-token>.
// The separator may be a space, a hyphen, or an "x".
func (lc *Locale) parseSimple(norm, original string) *Parsed {
	value, rest, ok := scanNumber(norm)
	if !ok {
		return nil
	}

	rest = trimSeparator(rest)
	conv, ok := LookupUnit(rest)
	if !ok {
		return nil
	}

	normalized := value * conv.Factor
	return &Parsed{
		Value:      value,
		Unit:       conv.Unit,
		Category:   conv.Category,
		Normalized: normalized,
		Display:    lc.displayString(normalized, conv),
		Original:   original,
	}
}

// parseMultiplicative handles <count> x <number><unit-token>, meaning
// count units of the given size each. The total normalized value is
// count * value * factor and the display combines both parts ("6x500ml").
func (lc *Locale) parseMultiplicative(norm, original string) *Parsed {
	count, rest, ok := scanNumber(norm)
	if !ok || count <= 0 {
		return nil
	}

	rest = strings.TrimLeft(rest, " ")
	if !strings.HasPrefix(rest, "x") {
		return nil
	}
	rest = strings.TrimLeft(rest[1:], " ")

	value, rest, ok := scanNumber(rest)
	if !ok {
		return nil
	}

	rest = trimSeparator(rest)
	conv, ok := LookupUnit(rest)
	if !ok {
		return nil
	}

	perUnit := value * conv.Factor
	return &Parsed{
		Value:      count * value,
		Unit:       conv.Unit,
		Category:   conv.Category,
		Normalized: count * perUnit,
		Display:    formatNumber(count) + "x" + lc.displayString(perUnit, conv),
		Original:   original,
	}
}

// scanNumber reads an integer or decimal lexeme from the front of s and
// returns its value and the unconsumed remainder.
func scanNumber(s string) (value float64, rest string, ok bool) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		// A bare trailing dot is not part of the number.
		if j > i+1 {
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, false
	}
	return v, s[i:], true
}

// trimSeparator drops at most one leading separator (space, hyphen, or x)
// between the numeric lexeme and the unit lexeme, then trims remaining
// spaces. "6-pack" and "500 ml" both end up at their bare unit token.
func trimSeparator(s string) string {
	if s != "" && (s[0] == ' ' || s[0] == '-' || s[0] == 'x') {
		s = s[1:]
	}
	return strings.TrimSpace(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
