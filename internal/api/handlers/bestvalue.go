package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pantrylab/shelfmatch/internal/catalog"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// Matcher defines the catalog operations behind the value-comparison
// endpoints.
type Matcher interface {
	BestValue(ctx context.Context, productID string) (*domain.BestValue, error)
	ClosestEntry(ctx context.Context, entryID string, tolerance float64) ([]catalog.EntryMatch, error)
	SwitchStore(ctx context.Context, entryID, targetStore string, tolerance float64) (*catalog.SwitchResult, error)
}

// BestValueHandler handles value comparison and substitution requests.
type BestValueHandler struct {
	catalog Matcher
}

// NewBestValueHandler creates a new BestValueHandler.
func NewBestValueHandler(c Matcher) *BestValueHandler {
	return &BestValueHandler{catalog: c}
}

// --- Input/Output types ---

// BestValueInput is the input for a best-value ranking.
type BestValueInput struct {
	ProductID string `path:"id" doc:"Product UUID"`
}

// BestValueOutput is the ranked best-value result.
type BestValueOutput struct {
	Body domain.BestValue
}

// ClosestEntryInput is the input for finding size-equivalent entries.
type ClosestEntryInput struct {
	EntryID   string  `path:"id"         doc:"Entry UUID"`
	Tolerance float64 `query:"tolerance" doc:"Max fractional size difference (default 0.2)" minimum:"0" maximum:"1"`
}

// ClosestEntryOutput lists size-equivalent entries at other stores.
type ClosestEntryOutput struct {
	Body struct {
		Matches []catalog.EntryMatch `json:"matches"`
	}
}

// SwitchStoreInput is the input for a store-switch lookup.
type SwitchStoreInput struct {
	EntryID string `path:"id" doc:"Entry UUID"`
	Body    struct {
		Store     string  `json:"store"               example:"asda" doc:"Store to switch to" minLength:"1"`
		Tolerance float64 `json:"tolerance,omitempty" example:"0.2"  doc:"Max fractional size difference (default 0.2)" minimum:"0" maximum:"1"`
	}
}

// SwitchStoreOutput is the chosen substitute at the target store.
type SwitchStoreOutput struct {
	Body catalog.SwitchResult
}

// --- Handlers ---

// BestValue ranks a product's entries by unit price, cheapest first.
func (h *BestValueHandler) BestValue(
	ctx context.Context,
	input *BestValueInput,
) (*BestValueOutput, error) {
	bv, err := h.catalog.BestValue(ctx, input.ProductID)
	if err != nil {
		return nil, huma.Error500InternalServerError("best-value ranking failed: " + err.Error())
	}

	if bv.Ranked == nil {
		bv.Ranked = []domain.RankedEntry{}
	}

	return &BestValueOutput{Body: *bv}, nil
}

// ClosestEntry finds entries of the same product at other stores whose
// size is closest to the given entry's.
func (h *BestValueHandler) ClosestEntry(
	ctx context.Context,
	input *ClosestEntryInput,
) (*ClosestEntryOutput, error) {
	matches, err := h.catalog.ClosestEntry(ctx, input.EntryID, input.Tolerance)
	if err != nil {
		return nil, huma.Error404NotFound("entry not found")
	}

	if matches == nil {
		matches = []catalog.EntryMatch{}
	}

	resp := &ClosestEntryOutput{}
	resp.Body.Matches = matches
	return resp, nil
}

// SwitchStore finds the best size-equivalent substitute at another store.
func (h *BestValueHandler) SwitchStore(
	ctx context.Context,
	input *SwitchStoreInput,
) (*SwitchStoreOutput, error) {
	result, err := h.catalog.SwitchStore(
		ctx, input.EntryID, input.Body.Store, input.Body.Tolerance,
	)
	if err != nil {
		if errors.Is(err, catalog.ErrNoSubstitute) {
			return nil, huma.Error404NotFound("no substitute within tolerance at " + input.Body.Store)
		}
		return nil, huma.Error500InternalServerError("store switch failed: " + err.Error())
	}

	return &SwitchStoreOutput{Body: *result}, nil
}

// RegisterBestValueRoutes registers value comparison endpoints with the Huma API.
func RegisterBestValueRoutes(api huma.API, h *BestValueHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "best-value",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/best-value",
		Summary:     "Rank entries by unit price",
		Description: "Ranks a product's store entries cheapest-per-unit first. " +
			"Entries whose size text did not parse are skipped and counted.",
		Tags:   []string{"value"},
		Errors: []int{http.StatusInternalServerError},
	}, h.BestValue)

	huma.Register(api, huma.Operation{
		OperationID: "closest-entry",
		Method:      http.MethodGet,
		Path:        "/api/v1/entries/{id}/closest",
		Summary:     "Find size-equivalent entries",
		Description: "Finds entries of the same product at other stores, ranked by " +
			"how closely their package size matches.",
		Tags:   []string{"value"},
		Errors: []int{http.StatusNotFound},
	}, h.ClosestEntry)

	huma.Register(api, huma.Operation{
		OperationID: "switch-store",
		Method:      http.MethodPost,
		Path:        "/api/v1/entries/{id}/switch-store",
		Summary:     "Find a substitute at another store",
		Description: "Picks the closest size-equivalent package for the entry's product " +
			"at the requested store, within the matching tolerance.",
		Tags:   []string{"value"},
		Errors: []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.SwitchStore)
}
