package size

// Round-number scoring tiers for volume and weight suggestions. A size
// sitting on a whole litre/kilogram beats one on a half, which beats one
// on a tenth; only the highest tier matched is awarded.
const (
	scoreRoundThousand = 3
	scoreRoundFiveHund = 2
	scoreRoundHundred  = 1
	scoreCommonSize    = 2
)

// SuggestStandardSize picks the most shelf-standard size from a set,
// optionally restricted to one category (pass an empty Category for no
// filter). Candidates score points for sitting on round normalized values
// and for matching the locale's common package sizes; ties keep the
// first-encountered candidate. ok is false when nothing parseable
// survives the filter.
func (lc *Locale) SuggestStandardSize(sizes []string, category Category) (string, bool) {
	best := ""
	bestScore := -1

	for _, s := range sizes {
		p := lc.Parse(s)
		if p == nil {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}

		score := lc.standardScore(p)
		if score > bestScore {
			best = s
			bestScore = score
		}
	}

	if bestScore < 0 {
		return "", false
	}
	return best, true
}

func (lc *Locale) standardScore(p *Parsed) int {
	score := 0

	if p.Category == CategoryVolume || p.Category == CategoryWeight {
		switch {
		case isMultipleOf(p.Normalized, 1000):
			score += scoreRoundThousand
		case isMultipleOf(p.Normalized, 500):
			score += scoreRoundFiveHund
		case isMultipleOf(p.Normalized, 100):
			score += scoreRoundHundred
		}
	}

	switch p.Category {
	case CategoryVolume:
		if containsValue(lc.CommonVolumes, p.Normalized) {
			score += scoreCommonSize
		}
	case CategoryWeight:
		if containsValue(lc.CommonWeights, p.Normalized) {
			score += scoreCommonSize
		}
	case CategoryCount:
		// Counts are judged on the literal entered quantity.
		if containsValue(lc.CommonCounts, p.Value) {
			score += scoreCommonSize
		}
	}

	return score
}
