package handlers_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylab/shelfmatch/internal/api/handlers"
	"github.com/pantrylab/shelfmatch/internal/catalog"
	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// mockEntriesProvider is a test double for EntriesProvider.
type mockEntriesProvider struct {
	entries   map[string]*domain.Entry
	lastQuery *store.EntryQuery
	err       error
}

func newMockEntriesProvider() *mockEntriesProvider {
	return &mockEntriesProvider{entries: make(map[string]*domain.Entry)}
}

func (m *mockEntriesProvider) UpsertEntry(_ context.Context, e *domain.Entry) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "new-entry-id"
	m.entries[e.ID] = e
	return nil
}

func (m *mockEntriesProvider) GetEntry(_ context.Context, id string) (*domain.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return e, nil
}

func (m *mockEntriesProvider) ListEntries(
	_ context.Context,
	opts *store.EntryQuery,
) ([]domain.Entry, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	m.lastQuery = opts
	var out []domain.Entry
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (m *mockEntriesProvider) DeleteEntry(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.entries, id)
	return nil
}

func newEntriesAPI(t *testing.T, m *mockEntriesProvider) humatest.TestAPI {
	t.Helper()

	// The real catalog service doubles as the deriver; Derive never
	// touches the store.
	deriver := catalog.New(nil, nil, 0, slog.New(slog.DiscardHandler))

	_, api := humatest.New(t)
	handlers.RegisterEntryRoutes(api, handlers.NewEntriesHandler(m, deriver))
	return api
}

func TestUpsertEntry(t *testing.T) {
	t.Parallel()

	t.Run("derives size fields on write", func(t *testing.T) {
		t.Parallel()

		m := newMockEntriesProvider()
		api := newEntriesAPI(t, m)

		resp := api.Post("/api/v1/entries", map[string]any{
			"product_id": "p1",
			"store":      "tesco",
			"size_text":  "2 pints",
			"price":      1.30,
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		e := m.entries["new-entry-id"]
		require.NotNil(t, e)
		require.NotNil(t, e.SizeDisplay)
		assert.Equal(t, "2pt", *e.SizeDisplay)
		require.NotNil(t, e.NormalizedValue)
		assert.InDelta(t, 1136.0, *e.NormalizedValue, 0.001)
		assert.Equal(t, "GBP", e.Currency)
	})

	t.Run("unparseable size stored without derived fields", func(t *testing.T) {
		t.Parallel()

		m := newMockEntriesProvider()
		api := newEntriesAPI(t, m)

		resp := api.Post("/api/v1/entries", map[string]any{
			"product_id": "p1",
			"store":      "tesco",
			"size_text":  "a dollop",
			"price":      2.00,
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		e := m.entries["new-entry-id"]
		require.NotNil(t, e)
		assert.Nil(t, e.SizeDisplay)
		assert.Nil(t, e.NormalizedValue)
		assert.False(t, e.Comparable())
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		t.Parallel()

		api := newEntriesAPI(t, newMockEntriesProvider())

		resp := api.Post("/api/v1/entries", map[string]any{"store": "tesco"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		m := newMockEntriesProvider()
		m.err = errors.New("db down")
		api := newEntriesAPI(t, m)

		resp := api.Post("/api/v1/entries", map[string]any{
			"product_id": "p1", "store": "tesco", "size_text": "1L", "price": 1.00,
		})
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestGetEntry(t *testing.T) {
	t.Parallel()

	m := newMockEntriesProvider()
	m.entries["e1"] = &domain.Entry{ID: "e1", ProductID: "p1", Store: "tesco", SizeText: "1L"}
	api := newEntriesAPI(t, m)

	resp := api.Get("/api/v1/entries/e1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "tesco")

	resp = api.Get("/api/v1/entries/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListEntries(t *testing.T) {
	t.Parallel()

	t.Run("maps query filters", func(t *testing.T) {
		t.Parallel()

		m := newMockEntriesProvider()
		api := newEntriesAPI(t, m)

		resp := api.Get("/api/v1/entries?product_id=p1&store=tesco&unparseable=true")
		require.Equal(t, http.StatusOK, resp.Code)

		require.NotNil(t, m.lastQuery)
		require.NotNil(t, m.lastQuery.ProductID)
		assert.Equal(t, "p1", *m.lastQuery.ProductID)
		require.NotNil(t, m.lastQuery.Store)
		assert.Equal(t, "tesco", *m.lastQuery.Store)
		require.NotNil(t, m.lastQuery.Comparable)
		assert.False(t, *m.lastQuery.Comparable)
	})

	t.Run("empty result is a JSON array", func(t *testing.T) {
		t.Parallel()

		api := newEntriesAPI(t, newMockEntriesProvider())

		resp := api.Get("/api/v1/entries")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"entries":[]`)
	})
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()

	m := newMockEntriesProvider()
	m.entries["e1"] = &domain.Entry{ID: "e1"}
	api := newEntriesAPI(t, m)

	resp := api.Delete("/api/v1/entries/e1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, m.entries, "e1")
}
