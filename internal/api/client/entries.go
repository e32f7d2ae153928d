package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// entryRequest contains only the fields the API accepts for an upsert.
type entryRequest struct {
	ProductID string  `json:"product_id"`
	Store     string  `json:"store"`
	SizeText  string  `json:"size_text"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency,omitempty"`
}

// EntriesResponse wraps a paginated entries response.
type EntriesResponse struct {
	Entries []domain.Entry `json:"entries"`
	Total   int            `json:"total"`
}

// ListEntriesParams defines query parameters for entry queries.
type ListEntriesParams struct {
	ProductID    string
	Store        string
	SizeCategory string
	Unparseable  bool
	Limit        int
	Offset       int
	OrderBy      string
}

// ListEntries returns entries matching the given parameters.
func (c *Client) ListEntries(
	ctx context.Context,
	params *ListEntriesParams,
) (*EntriesResponse, error) {
	q := url.Values{}
	if params.ProductID != "" {
		q.Set("product_id", params.ProductID)
	}
	if params.Store != "" {
		q.Set("store", params.Store)
	}
	if params.SizeCategory != "" {
		q.Set("size_category", params.SizeCategory)
	}
	if params.Unparseable {
		q.Set("unparseable", "true")
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/entries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp EntriesResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEntry returns a single entry by ID.
func (c *Client) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	var e domain.Entry
	if err := c.get(ctx, "/api/v1/entries/"+id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpsertEntry creates or updates a priced package for a product at a store.
// The server derives the comparable size fields from the raw size text.
func (c *Client) UpsertEntry(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	var stored domain.Entry
	req := entryRequest{
		ProductID: e.ProductID,
		Store:     e.Store,
		SizeText:  e.SizeText,
		Price:     e.Price,
		Currency:  e.Currency,
	}
	if err := c.post(ctx, "/api/v1/entries", req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteEntry deletes an entry by ID.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/entries/"+id, nil)
}

// BestValue ranks a product's entries cheapest-per-unit first.
func (c *Client) BestValue(ctx context.Context, productID string) (*domain.BestValue, error) {
	var bv domain.BestValue
	path := fmt.Sprintf("/api/v1/products/%s/best-value", productID)
	if err := c.get(ctx, path, &bv); err != nil {
		return nil, err
	}
	return &bv, nil
}

// ClosestMatch is one size-equivalent entry at another store.
type ClosestMatch struct {
	Entry           domain.Entry `json:"entry"`
	MatchScore      float64      `json:"match_score"`
	PercentDiff     float64      `json:"percent_diff"`
	IsExact         bool         `json:"is_exact"`
	IsAutoMatchable bool         `json:"is_auto_matchable"`
}

// ClosestEntry finds size-equivalent entries at other stores. A zero
// tolerance uses the server default.
func (c *Client) ClosestEntry(
	ctx context.Context,
	entryID string,
	tolerance float64,
) ([]ClosestMatch, error) {
	path := fmt.Sprintf("/api/v1/entries/%s/closest", entryID)
	if tolerance > 0 {
		path += "?tolerance=" + strconv.FormatFloat(tolerance, 'f', -1, 64)
	}

	var resp struct {
		Matches []ClosestMatch `json:"matches"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Matches, nil
}

// SwitchStoreResult pairs the target entry with its chosen substitute.
type SwitchStoreResult struct {
	Target     domain.Entry `json:"target"`
	Substitute ClosestMatch `json:"substitute"`
}

// SwitchStore finds the best size-equivalent substitute at another store.
func (c *Client) SwitchStore(
	ctx context.Context,
	entryID, store string,
	tolerance float64,
) (*SwitchStoreResult, error) {
	body := map[string]any{"store": store}
	if tolerance > 0 {
		body["tolerance"] = tolerance
	}

	var result SwitchStoreResult
	path := fmt.Sprintf("/api/v1/entries/%s/switch-store", entryID)
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
