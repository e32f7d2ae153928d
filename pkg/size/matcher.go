package size

import (
	"math"
	"sort"
)

// Matching thresholds.
const (
	// DefaultTolerance is the maximum fractional difference between two
	// normalized values still considered auto-matchable substitutes. 20%
	// absorbs small packaging differences (250g vs 227g butter) without
	// conflating genuinely different sizes.
	DefaultTolerance = 0.2

	// ExactThreshold is the fractional difference below which two sizes
	// count as the same size. 1% absorbs rounding noise, not real
	// packaging differences, and is independent of the caller tolerance.
	ExactThreshold = 0.01
)

// Match is one ranked candidate from a closest-size search.
type Match struct {
	Size            string  `json:"size"`
	Parsed          Parsed  `json:"parsed"`
	MatchScore      float64 `json:"match_score"`
	IsExact         bool    `json:"is_exact"`
	IsAutoMatchable bool    `json:"is_auto_matchable"`
	PercentDiff     float64 `json:"percent_diff"`
}

// MatchResult aggregates all surviving candidates, closest first.
type MatchResult struct {
	BestMatch     *Match  `json:"best_match,omitempty"`
	AllMatches    []Match `json:"all_matches"`
	HasExactMatch bool    `json:"has_exact_match"`
	HasAutoMatch  bool    `json:"has_auto_match"`
}

// FindClosestSize ranks candidate size strings by closeness to the target.
// Candidates that fail to parse or belong to a different category are
// skipped silently; cross-category comparisons are meaningless and never
// appear in the output. A non-positive tolerance falls back to
// DefaultTolerance. An unparseable (or zero-magnitude) target yields an
// empty result, not an error.
func (lc *Locale) FindClosestSize(target string, candidates []string, tolerance float64) MatchResult {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	result := MatchResult{AllMatches: []Match{}}

	t := lc.Parse(target)
	if t == nil || t.Normalized <= 0 {
		return result
	}

	for _, candidate := range candidates {
		c := lc.Parse(candidate)
		if c == nil || c.Category != t.Category {
			continue
		}

		percentDiff := math.Abs(c.Normalized-t.Normalized) / t.Normalized
		m := Match{
			Size:            candidate,
			Parsed:          *c,
			MatchScore:      math.Min(percentDiff/tolerance, 1),
			IsExact:         percentDiff <= ExactThreshold,
			IsAutoMatchable: percentDiff <= tolerance,
			PercentDiff:     percentDiff,
		}

		result.AllMatches = append(result.AllMatches, m)
		result.HasExactMatch = result.HasExactMatch || m.IsExact
		result.HasAutoMatch = result.HasAutoMatch || m.IsAutoMatchable
	}

	sort.SliceStable(result.AllMatches, func(i, j int) bool {
		return result.AllMatches[i].PercentDiff < result.AllMatches[j].PercentDiff
	})

	if len(result.AllMatches) > 0 {
		result.BestMatch = &result.AllMatches[0]
	}

	return result
}

// AreSizesEquivalent reports whether two size strings describe the same
// package size within the exact-match threshold. Unlike the matcher's
// target-relative difference, the denominator here is the larger of the
// two normalized values, so the check is symmetric.
func (lc *Locale) AreSizesEquivalent(a, b string) bool {
	pa := lc.Parse(a)
	pb := lc.Parse(b)
	if pa == nil || pb == nil || pa.Category != pb.Category {
		return false
	}

	denom := math.Max(pa.Normalized, pb.Normalized)
	if denom <= 0 {
		return false
	}

	return math.Abs(pa.Normalized-pb.Normalized)/denom <= ExactThreshold
}

// RankByValue sorts size strings ascending by normalized value, dropping
// entries that do not parse. The returned strings are the originals.
func (lc *Locale) RankByValue(sizes []string) []string {
	type entry struct {
		size       string
		normalized float64
	}

	entries := make([]entry, 0, len(sizes))
	for _, s := range sizes {
		if p := lc.Parse(s); p != nil {
			entries = append(entries, entry{size: s, normalized: p.Normalized})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].normalized < entries[j].normalized
	})

	ranked := make([]string, len(entries))
	for i, e := range entries {
		ranked[i] = e.size
	}
	return ranked
}

// Grouped buckets size strings by category.
type Grouped struct {
	Volume []string `json:"volume"`
	Weight []string `json:"weight"`
	Count  []string `json:"count"`
}

// GroupByCategory buckets each parseable size by its category.
// Unparseable entries are dropped, not placed in any bucket.
func (lc *Locale) GroupByCategory(sizes []string) Grouped {
	g := Grouped{Volume: []string{}, Weight: []string{}, Count: []string{}}
	for _, s := range sizes {
		p := lc.Parse(s)
		if p == nil {
			continue
		}
		switch p.Category {
		case CategoryVolume:
			g.Volume = append(g.Volume, s)
		case CategoryWeight:
			g.Weight = append(g.Weight, s)
		case CategoryCount:
			g.Count = append(g.Count, s)
		}
	}
	return g
}
