package client

import (
	"context"

	"github.com/pantrylab/shelfmatch/pkg/size"
)

// ParseSize parses free-form size text into its canonical representation.
func (c *Client) ParseSize(ctx context.Context, sizeText string) (*size.Parsed, error) {
	body := map[string]string{"size": sizeText}

	var p size.Parsed
	if err := c.post(ctx, "/api/v1/sizes/parse", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnitPriceResult is the computed unit price with its display form.
type UnitPriceResult struct {
	UnitPrice float64 `json:"unit_price"`
	Formatted string  `json:"formatted"`
	Category  string  `json:"category"`
}

// PricePerUnit computes the comparable unit price for a priced size.
func (c *Client) PricePerUnit(
	ctx context.Context,
	sizeText string,
	price float64,
) (*UnitPriceResult, error) {
	body := map[string]any{"size": sizeText, "price": price}

	var result UnitPriceResult
	if err := c.post(ctx, "/api/v1/sizes/price-per-unit", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MatchSizes ranks candidate sizes by closeness to a target size. A zero
// tolerance uses the server default.
func (c *Client) MatchSizes(
	ctx context.Context,
	target string,
	candidates []string,
	tolerance float64,
) (*size.MatchResult, error) {
	body := map[string]any{"target": target, "candidates": candidates}
	if tolerance > 0 {
		body["tolerance"] = tolerance
	}

	var result size.MatchResult
	if err := c.post(ctx, "/api/v1/sizes/match", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SizesEquivalent reports whether two size strings describe the same
// package size.
func (c *Client) SizesEquivalent(ctx context.Context, a, b string) (bool, error) {
	body := map[string]string{"a": a, "b": b}

	var resp struct {
		Equivalent bool `json:"equivalent"`
	}
	if err := c.post(ctx, "/api/v1/sizes/equivalent", body, &resp); err != nil {
		return false, err
	}
	return resp.Equivalent, nil
}

// RankSizes sorts sizes ascending by normalized magnitude, dropping
// unparseable entries.
func (c *Client) RankSizes(ctx context.Context, sizes []string) ([]string, error) {
	body := map[string]any{"sizes": sizes}

	var resp struct {
		Sizes []string `json:"sizes"`
	}
	if err := c.post(ctx, "/api/v1/sizes/rank", body, &resp); err != nil {
		return nil, err
	}
	return resp.Sizes, nil
}

// GroupSizes buckets sizes into volume, weight, and count groups.
func (c *Client) GroupSizes(ctx context.Context, sizes []string) (*size.Grouped, error) {
	body := map[string]any{"sizes": sizes}

	var g size.Grouped
	if err := c.post(ctx, "/api/v1/sizes/group", body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SuggestSize picks the most shelf-standard size from the candidates. An
// empty category considers every candidate.
func (c *Client) SuggestSize(
	ctx context.Context,
	sizes []string,
	category string,
) (string, error) {
	body := map[string]any{"sizes": sizes}
	if category != "" {
		body["category"] = category
	}

	var resp struct {
		Suggestion string `json:"suggestion"`
	}
	if err := c.post(ctx, "/api/v1/sizes/suggest", body, &resp); err != nil {
		return "", err
	}
	return resp.Suggestion, nil
}
