package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrylab/shelfmatch/internal/api/handlers"
)

func newSizesAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	handlers.RegisterSizeRoutes(api, handlers.NewSizesHandler(nil))
	return api
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	t.Run("parses pint sizes", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/parse", map[string]any{"size": "2 pints"})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"display":"2pt"`)
		assert.Contains(t, resp.Body.String(), `"normalized_value":1136`)
		assert.Contains(t, resp.Body.String(), `"category":"volume"`)
	})

	t.Run("rejects unparseable text", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/parse", map[string]any{"size": "a dollop"})
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Contains(t, resp.Body.String(), "does not parse")
	})
}

func TestPricePerUnitEndpoint(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	t.Run("volume priced per 100ml", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/price-per-unit", map[string]any{
			"size": "1L", "price": 1.50,
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"formatted":"£0.15/100ml"`)
		assert.Contains(t, resp.Body.String(), `"category":"volume"`)
	})

	t.Run("count priced per item", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/price-per-unit", map[string]any{
			"size": "6-pack", "price": 3.00,
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"formatted":"£0.50/each"`)
	})

	t.Run("unparseable size rejected", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/price-per-unit", map[string]any{
			"size": "nonsense", "price": 1.00,
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestMatchSizes(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	resp := api.Post("/api/v1/sizes/match", map[string]any{
		"target":     "2 pints",
		"candidates": []string{"1L", "2L", "500g"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	// 1L is within the default 20% window of 1136ml; 500g is cross-category.
	assert.Contains(t, body, `"has_auto_match":true`)
	assert.Contains(t, body, `"size":"1L"`)
	assert.NotContains(t, body, "500g")
}

func TestEquivalentEndpoint(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	resp := api.Post("/api/v1/sizes/equivalent", map[string]any{
		"a": "1 pint", "b": "568ml",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"equivalent":true`)

	resp = api.Post("/api/v1/sizes/equivalent", map[string]any{
		"a": "1 pint", "b": "500ml",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"equivalent":false`)
}

func TestRankSizesEndpoint(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	resp := api.Post("/api/v1/sizes/rank", map[string]any{
		"sizes": []string{"1L", "500ml", "2 pints", "junk"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"sizes":["500ml","1L","2 pints"]}`, resp.Body.String())
}

func TestGroupSizesEndpoint(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	resp := api.Post("/api/v1/sizes/group", map[string]any{
		"sizes": []string{"1L", "500g", "6-pack", "junk"},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t,
		`{"volume":["1L"],"weight":["500g"],"count":["6-pack"]}`,
		resp.Body.String(),
	)
}

func TestSuggestSizeEndpoint(t *testing.T) {
	t.Parallel()

	api := newSizesAPI(t)

	t.Run("suggests the shelf standard", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/suggest", map[string]any{
			"sizes": []string{"568ml", "500ml", "1L"},
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"suggestion":"1L"}`, resp.Body.String())
	})

	t.Run("category filter", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/suggest", map[string]any{
			"sizes":    []string{"1L", "500g"},
			"category": "weight",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"suggestion":"500g"}`, resp.Body.String())
	})

	t.Run("no parseable candidates", func(t *testing.T) {
		resp := api.Post("/api/v1/sizes/suggest", map[string]any{
			"sizes": []string{"junk", "more junk"},
		})
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}
