package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListJobs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500)")
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "dairy", r.URL.Query().Get("category"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ProductsResponse{
			Products: []domain.Product{{ID: "p1", Name: "semi-skimmed milk"}},
			Total:    1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListProducts(context.Background(), &ListProductsParams{
		Category: "dairy",
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Products, 1)
}

func TestClient_CreateProduct(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p domain.Product
		err := json.NewDecoder(r.Body).Decode(&p)
		assert.NoError(t, err)
		p.ID = "p-created"

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.CreateProduct(context.Background(), "cheddar", "dairy")
	require.NoError(t, err)
	assert.Equal(t, "p-created", result.ID)
	assert.Equal(t, "cheddar", result.Name)
}

func TestClient_DeleteProduct(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/products/p1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteProduct(context.Background(), "p1")
	require.NoError(t, err)
}

func TestClient_UpsertEntry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/entries", r.URL.Path)

		var req entryRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		assert.NoError(t, err)
		assert.Equal(t, "2 pints", req.SizeText)

		display := "2pt"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Entry{
			ID:          "e-created",
			ProductID:   req.ProductID,
			Store:       req.Store,
			SizeText:    req.SizeText,
			Price:       req.Price,
			SizeDisplay: &display,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.UpsertEntry(context.Background(), &domain.Entry{
		ProductID: "p1",
		Store:     "tesco",
		SizeText:  "2 pints",
		Price:     1.30,
	})
	require.NoError(t, err)
	assert.Equal(t, "e-created", result.ID)
	require.NotNil(t, result.SizeDisplay)
	assert.Equal(t, "2pt", *result.SizeDisplay)
}

func TestClient_ListEntries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entries", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("product_id"))
		assert.Equal(t, "true", r.URL.Query().Get("unparseable"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(EntriesResponse{
			Entries: []domain.Entry{{ID: "e1"}},
			Total:   1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.ListEntries(context.Background(), &ListEntriesParams{
		ProductID:   "p1",
		Unparseable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Entries, 1)
}

func TestClient_BestValue(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/p1/best-value", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.BestValue{
			ProductID: "p1",
			Ranked: []domain.RankedEntry{
				{Entry: domain.Entry{ID: "e1", Store: "aldi"}, UnitPriceStr: "£0.10/100ml"},
			},
			Skipped: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	bv, err := c.BestValue(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, bv.Skipped)
	require.Len(t, bv.Ranked, 1)
	assert.Equal(t, "aldi", bv.Ranked[0].Entry.Store)
}

func TestClient_ClosestEntry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/entries/e1/closest", r.URL.Path)
		assert.Equal(t, "0.1", r.URL.Query().Get("tolerance"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"matches": []ClosestMatch{
				{Entry: domain.Entry{ID: "e2", Store: "asda"}, IsAutoMatchable: true},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	matches, err := c.ClosestEntry(context.Background(), "e1", 0.1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsAutoMatchable)
}

func TestClient_SwitchStore(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/entries/e1/switch-store", r.URL.Path)

		var body map[string]any
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "asda", body["store"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SwitchStoreResult{
			Target:     domain.Entry{ID: "e1", Store: "tesco"},
			Substitute: ClosestMatch{Entry: domain.Entry{ID: "e2", Store: "asda"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.SwitchStore(context.Background(), "e1", "asda", 0)
	require.NoError(t, err)
	assert.Equal(t, "asda", result.Substitute.Entry.Store)
}

func TestClient_ParseSize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sizes/parse", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":1136,"unit":"ml","category":"volume","normalized_value":1136,"display":"2pt","original":"2 pints"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	p, err := c.ParseSize(context.Background(), "2 pints")
	require.NoError(t, err)
	assert.Equal(t, "2pt", p.Display)
	assert.InDelta(t, 1136.0, p.Normalized, 0.001)
}

func TestClient_RankSizes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sizes/rank", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sizes":["500ml","1L","2 pints"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	sizes, err := c.RankSizes(context.Background(), []string{"2 pints", "500ml", "1L"})
	require.NoError(t, err)
	assert.Equal(t, []string{"500ml", "1L", "2 pints"}, sizes)
}

func TestClient_TriggerRevalue(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/revalue", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "revaluation completed"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.TriggerRevalue(context.Background())
	require.NoError(t, err)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	c := New("http://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}
