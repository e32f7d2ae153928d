package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// fakeStore is an in-memory Store covering the methods the catalog
// service touches. Everything else panics to catch unexpected calls.
type fakeStore struct {
	store.Store

	entries map[string]*domain.Entry
	derived map[string]*domain.DerivedSize

	listAllErr error
	updateErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string]*domain.Entry),
		derived: make(map[string]*domain.DerivedSize),
	}
}

func (f *fakeStore) add(e domain.Entry) *fakeStore {
	cp := e
	f.entries[e.ID] = &cp
	return f
}

func (f *fakeStore) GetEntry(_ context.Context, id string) (*domain.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return e, nil
}

func (f *fakeStore) ListEntriesByProduct(_ context.Context, productID string) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range f.entries {
		if e.ProductID == productID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllEntries(_ context.Context) ([]domain.Entry, error) {
	if f.listAllErr != nil {
		return nil, f.listAllErr
	}
	var out []domain.Entry
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeStore) UpdateEntryDerived(_ context.Context, id string, d *domain.DerivedSize) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.derived[id] = d
	return nil
}

func (f *fakeStore) CountUnparseableEntries(_ context.Context) (int, error) {
	count := 0
	for id := range f.entries {
		d, ok := f.derived[id]
		if !ok || d.NormalizedValue == nil || d.PricePerUnit == nil {
			count++
		}
	}
	return count, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func comparableEntry(id, productID, storeName, sizeText string, price, norm, ppu float64) domain.Entry {
	cat := "volume"
	display := sizeText
	return domain.Entry{
		ID:              id,
		ProductID:       productID,
		Store:           storeName,
		SizeText:        sizeText,
		Price:           price,
		Currency:        "GBP",
		SizeDisplay:     &display,
		SizeCategory:    &cat,
		NormalizedValue: &norm,
		PricePerUnit:    &ppu,
	}
}

func TestService_Derive(t *testing.T) {
	t.Parallel()

	svc := catalog.New(newFakeStore(), nil, 0, testLogger())

	t.Run("parseable size", func(t *testing.T) {
		t.Parallel()

		d := svc.Derive("2 pints", 1.30)
		require.NotNil(t, d.NormalizedValue)
		assert.InDelta(t, 1136.0, *d.NormalizedValue, 0.001)
		assert.Equal(t, "2pt", *d.SizeDisplay)
		assert.Equal(t, "volume", *d.SizeCategory)
		require.NotNil(t, d.PricePerUnit)
		assert.InDelta(t, 1.30/1136.0*100, *d.PricePerUnit, 0.0001)
	})

	t.Run("unparseable size yields empty derivation", func(t *testing.T) {
		t.Parallel()

		d := svc.Derive("a dollop", 2.00)
		assert.Nil(t, d.SizeDisplay)
		assert.Nil(t, d.SizeCategory)
		assert.Nil(t, d.NormalizedValue)
		assert.Nil(t, d.PricePerUnit)
	})
}

func TestService_Revalue(t *testing.T) {
	t.Parallel()

	fs := newFakeStore()
	fs.add(domain.Entry{ID: "e1", ProductID: "p1", Store: "tesco", SizeText: "2 pints", Price: 1.30})
	fs.add(domain.Entry{ID: "e2", ProductID: "p1", Store: "asda", SizeText: "gibberish", Price: 1.10})

	svc := catalog.New(fs, nil, 0, testLogger())

	updated, err := svc.Revalue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	require.Contains(t, fs.derived, "e1")
	require.NotNil(t, fs.derived["e1"].NormalizedValue)
	assert.InDelta(t, 1136.0, *fs.derived["e1"].NormalizedValue, 0.001)

	require.Contains(t, fs.derived, "e2")
	assert.Nil(t, fs.derived["e2"].NormalizedValue)
}

func TestService_Revalue_StoreErrors(t *testing.T) {
	t.Parallel()

	t.Run("list failure", func(t *testing.T) {
		t.Parallel()

		fs := newFakeStore()
		fs.listAllErr = errors.New("connection refused")

		svc := catalog.New(fs, nil, 0, testLogger())
		_, err := svc.Revalue(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing entries for revaluation")
	})

	t.Run("update failure reports partial count", func(t *testing.T) {
		t.Parallel()

		fs := newFakeStore()
		fs.add(domain.Entry{ID: "e1", ProductID: "p1", Store: "tesco", SizeText: "1L", Price: 1.00})
		fs.updateErr = errors.New("write failed")

		svc := catalog.New(fs, nil, 0, testLogger())
		updated, err := svc.Revalue(context.Background())
		require.Error(t, err)
		assert.Equal(t, 0, updated)
	})
}

func TestService_BestValue(t *testing.T) {
	t.Parallel()

	fs := newFakeStore()
	// £0.15/100ml at waitrose, £0.10/100ml at aldi, one unparseable.
	fs.add(comparableEntry("e1", "p1", "waitrose", "1L", 1.50, 1000, 0.15))
	fs.add(comparableEntry("e2", "p1", "aldi", "1L", 1.00, 1000, 0.10))
	fs.add(domain.Entry{ID: "e3", ProductID: "p1", Store: "corner shop", SizeText: "big one", Price: 2.00})

	svc := catalog.New(fs, nil, 0, testLogger())

	bv, err := svc.BestValue(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", bv.ProductID)
	assert.Equal(t, 1, bv.Skipped)
	require.Len(t, bv.Ranked, 2)
	assert.Equal(t, "aldi", bv.Ranked[0].Entry.Store)
	assert.Equal(t, "waitrose", bv.Ranked[1].Entry.Store)
	assert.Equal(t, "£0.10/100ml", bv.Ranked[0].UnitPriceStr)
}

func TestService_BestValue_EmptyProduct(t *testing.T) {
	t.Parallel()

	svc := catalog.New(newFakeStore(), nil, 0, testLogger())

	bv, err := svc.BestValue(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, bv.Ranked)
	assert.Zero(t, bv.Skipped)
}

func TestService_ClosestEntry(t *testing.T) {
	t.Parallel()

	fs := newFakeStore()
	fs.add(comparableEntry("target", "p1", "tesco", "1L", 1.20, 1000, 0.12))
	fs.add(comparableEntry("near", "p1", "asda", "1136ml", 1.25, 1136, 0.11))
	fs.add(comparableEntry("far", "p1", "asda", "2L", 2.00, 2000, 0.10))
	// Same store as target: excluded.
	fs.add(comparableEntry("same-store", "p1", "tesco", "500ml", 0.70, 500, 0.14))
	// Different category: drops out of matching.
	weight := "weight"
	fs.add(domain.Entry{
		ID: "powder", ProductID: "p1", Store: "asda", SizeText: "500g",
		Price: 3.00, Currency: "GBP", SizeCategory: &weight,
	})

	svc := catalog.New(fs, nil, 0, testLogger())

	matches, err := svc.ClosestEntry(context.Background(), "target", 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "near", matches[0].Entry.ID)
	assert.True(t, matches[0].IsAutoMatchable)
	assert.Equal(t, "far", matches[1].Entry.ID)
	assert.False(t, matches[1].IsAutoMatchable)

	for _, m := range matches {
		assert.NotEqual(t, "same-store", m.Entry.ID)
		assert.NotEqual(t, "powder", m.Entry.ID)
	}
}

func TestService_ClosestEntry_UnknownEntry(t *testing.T) {
	t.Parallel()

	svc := catalog.New(newFakeStore(), nil, 0, testLogger())

	_, err := svc.ClosestEntry(context.Background(), "missing", 0)
	require.Error(t, err)
}

func TestService_SwitchStore(t *testing.T) {
	t.Parallel()

	fs := newFakeStore()
	fs.add(comparableEntry("target", "p1", "tesco", "2 pints", 1.30, 1136, 0.114))
	fs.add(comparableEntry("sub", "p1", "asda", "1L", 1.10, 1000, 0.11))
	fs.add(comparableEntry("too-big", "p1", "asda", "4 pints", 2.20, 2272, 0.097))

	svc := catalog.New(fs, nil, 0, testLogger())

	t.Run("picks the closest size within tolerance", func(t *testing.T) {
		t.Parallel()

		// 1L vs 1136ml differs by ~12%, inside the default 20% window.
		res, err := svc.SwitchStore(context.Background(), "target", "asda", 0)
		require.NoError(t, err)
		assert.Equal(t, "sub", res.Substitute.Entry.ID)
		assert.Equal(t, "target", res.Target.ID)
	})

	t.Run("no candidate within tolerance", func(t *testing.T) {
		t.Parallel()

		// 5% tolerance leaves nothing auto-matchable at asda.
		_, err := svc.SwitchStore(context.Background(), "target", "asda", 0.05)
		require.ErrorIs(t, err, catalog.ErrNoSubstitute)
	})

	t.Run("store does not carry the product", func(t *testing.T) {
		t.Parallel()

		_, err := svc.SwitchStore(context.Background(), "target", "lidl", 0)
		require.ErrorIs(t, err, catalog.ErrNoSubstitute)
	})
}

func TestService_SwitchStore_DuplicateSizeTexts(t *testing.T) {
	t.Parallel()

	// Two stores share a size text; matching must still attribute each
	// entry to its own store.
	fs := newFakeStore()
	fs.add(comparableEntry("target", "p1", "tesco", "1L", 1.20, 1000, 0.12))
	fs.add(comparableEntry("asda-1l", "p1", "asda", "1L", 1.10, 1000, 0.11))
	fs.add(comparableEntry("lidl-1l", "p1", "lidl", "1L", 1.05, 1000, 0.105))

	svc := catalog.New(fs, nil, 0, testLogger())

	res, err := svc.SwitchStore(context.Background(), "target", "lidl", 0)
	require.NoError(t, err)
	assert.Equal(t, "lidl-1l", res.Substitute.Entry.ID)
	assert.True(t, res.Substitute.IsExact)
}

func TestService_MatchEntriesDeterministicOrder(t *testing.T) {
	t.Parallel()

	// Map iteration order must not leak into results: matches come back
	// sorted by percent difference.
	fs := newFakeStore()
	fs.add(comparableEntry("target", "p1", "tesco", "1L", 1.20, 1000, 0.12))
	for i, text := range []string{"900ml", "950ml", "1050ml", "1100ml"} {
		id := fmt.Sprintf("c%d", i)
		fs.add(comparableEntry(id, "p1", "asda", text, 1.00, 0, 0.1))
	}

	svc := catalog.New(fs, nil, 0, testLogger())

	matches, err := svc.ClosestEntry(context.Background(), "target", 0)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].PercentDiff, matches[i-1].PercentDiff)
	}
}
