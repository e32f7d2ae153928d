// Package catalog implements the product catalog business logic: deriving
// comparable size data from raw entry text, ranking entries by unit price,
// and finding size-equivalent substitutes across stores.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pantrylab/shelfmatch/internal/metrics"
	"github.com/pantrylab/shelfmatch/internal/store"
	"github.com/pantrylab/shelfmatch/pkg/size"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// ErrNoSubstitute is returned when no candidate entry falls within the
// matching tolerance.
var ErrNoSubstitute = errors.New("no substitute within tolerance")

// Service wires the size engine to the catalog store.
type Service struct {
	store     store.Store
	locale    *size.Locale
	tolerance float64
	log       *slog.Logger
}

// New creates a catalog Service. A zero tolerance falls back to the
// engine default.
func New(st store.Store, locale *size.Locale, tolerance float64, log *slog.Logger) *Service {
	if locale == nil {
		locale = size.UK()
	}
	if tolerance <= 0 {
		tolerance = size.DefaultTolerance
	}
	return &Service{
		store:     st,
		locale:    locale,
		tolerance: tolerance,
		log:       log,
	}
}

// Derive computes the derived size fields for an entry from its raw size
// text and shelf price. All fields are nil when the text does not parse;
// the entry is stored anyway and surfaces as unparseable.
func (s *Service) Derive(sizeText string, price float64) *domain.DerivedSize {
	p := s.locale.Parse(sizeText)
	if p == nil {
		metrics.ParseFailuresTotal.Inc()
		return &domain.DerivedSize{}
	}

	d := &domain.DerivedSize{
		SizeDisplay:     &p.Display,
		NormalizedValue: &p.Normalized,
	}
	cat := string(p.Category)
	d.SizeCategory = &cat

	if ppu, ok := s.locale.PricePerUnit(price, sizeText); ok {
		d.PricePerUnit = &ppu
	}

	return d
}

// Revalue recomputes the derived size fields for every catalog entry and
// returns the number of entries updated. Entries are rewritten even when
// unchanged; the pass is idempotent and cheap relative to its schedule.
func (s *Service) Revalue(ctx context.Context) (int, error) {
	entries, err := s.store.ListAllEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing entries for revaluation: %w", err)
	}

	var updated int
	for i := range entries {
		e := &entries[i]

		d := s.Derive(e.SizeText, e.Price)
		if err := s.store.UpdateEntryDerived(ctx, e.ID, d); err != nil {
			return updated, fmt.Errorf("revaluing entry %s: %w", e.ID, err)
		}
		updated++

		if d.NormalizedValue == nil {
			s.log.Warn("entry size text does not parse",
				"entry_id", e.ID, "size_text", e.SizeText)
		}
	}

	if count, err := s.store.CountUnparseableEntries(ctx); err == nil {
		metrics.UnparseableEntries.Set(float64(count))
	}

	return updated, nil
}

// BestValue ranks a product's entries by unit price, cheapest first.
// Entries without derived values are excluded from the ranking and
// reported via the Skipped count.
func (s *Service) BestValue(ctx context.Context, productID string) (*domain.BestValue, error) {
	metrics.BestValueRequestsTotal.Inc()

	entries, err := s.store.ListEntriesByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for product %s: %w", productID, err)
	}

	result := &domain.BestValue{ProductID: productID}
	for _, e := range entries {
		if !e.Comparable() {
			result.Skipped++
			continue
		}
		result.Ranked = append(result.Ranked, domain.RankedEntry{
			Entry:        e,
			UnitPriceStr: s.formatUnitPrice(e),
		})
	}

	sort.SliceStable(result.Ranked, func(i, j int) bool {
		return *result.Ranked[i].Entry.PricePerUnit < *result.Ranked[j].Entry.PricePerUnit
	})

	if result.Skipped > 0 {
		s.log.Debug("best-value ranking skipped unparseable entries",
			"product_id", productID, "skipped", result.Skipped)
	}

	return result, nil
}

// EntryMatch pairs a candidate entry with its size-match quality against
// a target entry.
type EntryMatch struct {
	Entry           domain.Entry `json:"entry"`
	MatchScore      float64      `json:"match_score"`
	PercentDiff     float64      `json:"percent_diff"`
	IsExact         bool         `json:"is_exact"`
	IsAutoMatchable bool         `json:"is_auto_matchable"`
}

// ClosestEntry finds the entries of the same product at other stores whose
// package size is closest to the given entry's, nearest first. A zero
// tolerance falls back to the service default.
func (s *Service) ClosestEntry(
	ctx context.Context,
	entryID string,
	tolerance float64,
) ([]EntryMatch, error) {
	metrics.MatchRequestsTotal.Inc()

	target, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", entryID, err)
	}

	siblings, err := s.store.ListEntriesByProduct(ctx, target.ProductID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for product %s: %w", target.ProductID, err)
	}

	var candidates []domain.Entry
	for _, e := range siblings {
		if e.ID == target.ID || e.Store == target.Store {
			continue
		}
		candidates = append(candidates, e)
	}

	return s.matchEntries(target, candidates, tolerance), nil
}

// SwitchResult is the outcome of a store-switch lookup: the substitute
// entry chosen at the target store and how closely its size matches.
type SwitchResult struct {
	Target     domain.Entry `json:"target"`
	Substitute EntryMatch   `json:"substitute"`
}

// SwitchStore finds the best size-equivalent substitute for an entry at
// another store. It returns ErrNoSubstitute when the target store carries
// the product only in sizes outside the tolerance, or not at all.
func (s *Service) SwitchStore(
	ctx context.Context,
	entryID string,
	targetStore string,
	tolerance float64,
) (*SwitchResult, error) {
	metrics.MatchRequestsTotal.Inc()

	target, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", entryID, err)
	}

	siblings, err := s.store.ListEntriesByProduct(ctx, target.ProductID)
	if err != nil {
		return nil, fmt.Errorf("listing entries for product %s: %w", target.ProductID, err)
	}

	var candidates []domain.Entry
	for _, e := range siblings {
		if e.Store == targetStore && e.ID != target.ID {
			candidates = append(candidates, e)
		}
	}

	matches := s.matchEntries(target, candidates, tolerance)
	for _, m := range matches {
		if m.IsAutoMatchable {
			return &SwitchResult{Target: *target, Substitute: m}, nil
		}
	}

	return nil, ErrNoSubstitute
}

// matchEntries ranks candidate entries by size closeness to the target.
// Candidates whose size text does not parse, or whose size category
// differs from the target's, drop out.
func (s *Service) matchEntries(
	target *domain.Entry,
	candidates []domain.Entry,
	tolerance float64,
) []EntryMatch {
	if tolerance <= 0 {
		tolerance = s.tolerance
	}

	// The matcher works on size strings; entries at different stores can
	// share one, so group entries by text and expand after matching.
	byText := make(map[string][]domain.Entry)
	texts := make([]string, 0, len(candidates))
	for _, e := range candidates {
		if _, seen := byText[e.SizeText]; !seen {
			texts = append(texts, e.SizeText)
		}
		byText[e.SizeText] = append(byText[e.SizeText], e)
	}

	result := s.locale.FindClosestSize(target.SizeText, texts, tolerance)

	var matches []EntryMatch
	for _, m := range result.AllMatches {
		for _, e := range byText[m.Size] {
			matches = append(matches, EntryMatch{
				Entry:           e,
				MatchScore:      m.MatchScore,
				PercentDiff:     m.PercentDiff,
				IsExact:         m.IsExact,
				IsAutoMatchable: m.IsAutoMatchable,
			})
		}
	}

	return matches
}

func (s *Service) formatUnitPrice(e domain.Entry) string {
	var cat size.Category
	if e.SizeCategory != nil {
		cat = size.Category(*e.SizeCategory)
	}
	return s.locale.FormatPricePerUnit(*e.PricePerUnit, cat)
}
