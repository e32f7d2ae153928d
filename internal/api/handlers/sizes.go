package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pantrylab/shelfmatch/pkg/size"
)

// SizesHandler exposes the size engine over HTTP. Every operation is a
// pure function of the request body; nothing touches the store.
type SizesHandler struct {
	locale *size.Locale
}

// NewSizesHandler creates a new SizesHandler. A nil locale defaults to UK.
func NewSizesHandler(locale *size.Locale) *SizesHandler {
	if locale == nil {
		locale = size.UK()
	}
	return &SizesHandler{locale: locale}
}

// --- Input/Output types ---

// ParseSizeInput is the request body for parsing one size string.
type ParseSizeInput struct {
	Body struct {
		Size string `json:"size" example:"2 pints" doc:"Free-form size text"`
	}
}

// ParseSizeOutput is the parsed size representation.
type ParseSizeOutput struct {
	Body size.Parsed
}

// PricePerUnitInput is the request body for a unit price calculation.
type PricePerUnitInput struct {
	Body struct {
		Size  string  `json:"size"  example:"2 pints" doc:"Free-form size text"`
		Price float64 `json:"price" example:"1.30"    doc:"Shelf price"        minimum:"0"`
	}
}

// PricePerUnitOutput is the computed unit price with its display form.
type PricePerUnitOutput struct {
	Body struct {
		UnitPrice float64 `json:"unit_price" example:"0.114"`
		Formatted string  `json:"formatted"  example:"£0.11/100ml"`
		Category  string  `json:"category"   example:"volume"`
	}
}

// MatchSizesInput is the request body for a closest-size search.
type MatchSizesInput struct {
	Body struct {
		Target     string   `json:"target"              example:"2 pints" doc:"Size to match against"`
		Candidates []string `json:"candidates"                            doc:"Candidate size strings"`
		Tolerance  float64  `json:"tolerance,omitempty" example:"0.2"     doc:"Max fractional size difference (default 0.2)" minimum:"0" maximum:"1"`
	}
}

// MatchSizesOutput is the ranked match result.
type MatchSizesOutput struct {
	Body size.MatchResult
}

// EquivalentInput is the request body for a size equivalence check.
type EquivalentInput struct {
	Body struct {
		A string `json:"a" example:"1 pint"`
		B string `json:"b" example:"568ml"`
	}
}

// EquivalentOutput reports whether two sizes describe the same package.
type EquivalentOutput struct {
	Body struct {
		Equivalent bool `json:"equivalent"`
	}
}

// SizeListInput is the request body for operations over a list of sizes.
type SizeListInput struct {
	Body struct {
		Sizes []string `json:"sizes" doc:"Size strings to process"`
	}
}

// RankSizesOutput is the list of sizes sorted ascending by magnitude.
type RankSizesOutput struct {
	Body struct {
		Sizes []string `json:"sizes"`
	}
}

// GroupSizesOutput buckets the input sizes by category.
type GroupSizesOutput struct {
	Body size.Grouped
}

// SuggestSizeInput is the request body for a standard-size suggestion.
type SuggestSizeInput struct {
	Body struct {
		Sizes    []string `json:"sizes"              doc:"Candidate size strings"`
		Category string   `json:"category,omitempty" doc:"Restrict to one category" enum:"volume,weight,count,"`
	}
}

// SuggestSizeOutput is the chosen standard size.
type SuggestSizeOutput struct {
	Body struct {
		Suggestion string `json:"suggestion" example:"1L"`
	}
}

// --- Handlers ---

// ParseSize parses one free-form size string.
func (h *SizesHandler) ParseSize(
	_ context.Context,
	input *ParseSizeInput,
) (*ParseSizeOutput, error) {
	p := h.locale.Parse(input.Body.Size)
	if p == nil {
		return nil, huma.Error422UnprocessableEntity("size text does not parse: " + input.Body.Size)
	}
	return &ParseSizeOutput{Body: *p}, nil
}

// PricePerUnit computes the comparable unit price for a priced size.
func (h *SizesHandler) PricePerUnit(
	_ context.Context,
	input *PricePerUnitInput,
) (*PricePerUnitOutput, error) {
	p := h.locale.Parse(input.Body.Size)
	if p == nil {
		return nil, huma.Error422UnprocessableEntity("size text does not parse: " + input.Body.Size)
	}

	unitPrice, ok := h.locale.PricePerUnit(input.Body.Price, input.Body.Size)
	if !ok {
		return nil, huma.Error422UnprocessableEntity("size has no comparable magnitude: " + input.Body.Size)
	}

	resp := &PricePerUnitOutput{}
	resp.Body.UnitPrice = unitPrice
	resp.Body.Formatted = h.locale.FormatPricePerUnit(unitPrice, p.Category)
	resp.Body.Category = string(p.Category)
	return resp, nil
}

// MatchSizes ranks candidate sizes by closeness to a target.
func (h *SizesHandler) MatchSizes(
	_ context.Context,
	input *MatchSizesInput,
) (*MatchSizesOutput, error) {
	result := h.locale.FindClosestSize(
		input.Body.Target, input.Body.Candidates, input.Body.Tolerance,
	)
	return &MatchSizesOutput{Body: result}, nil
}

// Equivalent reports whether two sizes describe the same package size.
func (h *SizesHandler) Equivalent(
	_ context.Context,
	input *EquivalentInput,
) (*EquivalentOutput, error) {
	resp := &EquivalentOutput{}
	resp.Body.Equivalent = h.locale.AreSizesEquivalent(input.Body.A, input.Body.B)
	return resp, nil
}

// RankSizes sorts sizes ascending by normalized magnitude.
func (h *SizesHandler) RankSizes(
	_ context.Context,
	input *SizeListInput,
) (*RankSizesOutput, error) {
	resp := &RankSizesOutput{}
	resp.Body.Sizes = h.locale.RankByValue(input.Body.Sizes)
	if resp.Body.Sizes == nil {
		resp.Body.Sizes = []string{}
	}
	return resp, nil
}

// GroupSizes buckets sizes by category.
func (h *SizesHandler) GroupSizes(
	_ context.Context,
	input *SizeListInput,
) (*GroupSizesOutput, error) {
	return &GroupSizesOutput{Body: h.locale.GroupByCategory(input.Body.Sizes)}, nil
}

// SuggestSize picks the most shelf-standard size from the candidates.
func (h *SizesHandler) SuggestSize(
	_ context.Context,
	input *SuggestSizeInput,
) (*SuggestSizeOutput, error) {
	suggestion, ok := h.locale.SuggestStandardSize(
		input.Body.Sizes, size.Category(input.Body.Category),
	)
	if !ok {
		return nil, huma.Error404NotFound("no parseable size in the requested category")
	}

	resp := &SuggestSizeOutput{}
	resp.Body.Suggestion = suggestion
	return resp, nil
}

// RegisterSizeRoutes registers size engine endpoints with the Huma API.
func RegisterSizeRoutes(api huma.API, h *SizesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "parse-size",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/parse",
		Summary:     "Parse a size string",
		Description: "Parses free-form size text into its canonical representation.",
		Tags:        []string{"sizes"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.ParseSize)

	huma.Register(api, huma.Operation{
		OperationID: "price-per-unit",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/price-per-unit",
		Summary:     "Compute a unit price",
		Description: "Derives the comparable unit price (per 100ml, per 100g, or per item) " +
			"for a priced size.",
		Tags:   []string{"sizes"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.PricePerUnit)

	huma.Register(api, huma.Operation{
		OperationID: "match-sizes",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/match",
		Summary:     "Find the closest size",
		Description: "Ranks candidate sizes by closeness to a target size within a tolerance.",
		Tags:        []string{"sizes"},
	}, h.MatchSizes)

	huma.Register(api, huma.Operation{
		OperationID: "sizes-equivalent",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/equivalent",
		Summary:     "Check size equivalence",
		Description: "Reports whether two size strings describe the same package size.",
		Tags:        []string{"sizes"},
	}, h.Equivalent)

	huma.Register(api, huma.Operation{
		OperationID: "rank-sizes",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/rank",
		Summary:     "Rank sizes by magnitude",
		Description: "Sorts sizes ascending by normalized value, dropping unparseable entries.",
		Tags:        []string{"sizes"},
	}, h.RankSizes)

	huma.Register(api, huma.Operation{
		OperationID: "group-sizes",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/group",
		Summary:     "Group sizes by category",
		Description: "Buckets sizes into volume, weight, and count groups.",
		Tags:        []string{"sizes"},
	}, h.GroupSizes)

	huma.Register(api, huma.Operation{
		OperationID: "suggest-size",
		Method:      http.MethodPost,
		Path:        "/api/v1/sizes/suggest",
		Summary:     "Suggest a standard size",
		Description: "Picks the most shelf-standard size from the candidates, " +
			"preferring round and common UK package sizes.",
		Tags:   []string{"sizes"},
		Errors: []int{http.StatusNotFound},
	}, h.SuggestSize)
}
