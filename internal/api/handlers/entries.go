package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// EntriesProvider defines the store methods required by the entries handler.
type EntriesProvider interface {
	UpsertEntry(ctx context.Context, e *domain.Entry) error
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, opts *store.EntryQuery) ([]domain.Entry, int, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Deriver computes derived size fields from raw entry data.
type Deriver interface {
	Derive(sizeText string, price float64) *domain.DerivedSize
}

// EntriesHandler handles entry CRUD operations. Writes derive the
// comparable size fields before hitting the store, so a freshly written
// entry is immediately rankable.
type EntriesHandler struct {
	store   EntriesProvider
	deriver Deriver
}

// NewEntriesHandler creates a new EntriesHandler.
func NewEntriesHandler(s EntriesProvider, d Deriver) *EntriesHandler {
	return &EntriesHandler{store: s, deriver: d}
}

// --- Input/Output types ---

// ListEntriesInput is the input for listing entries with optional filters.
type ListEntriesInput struct {
	ProductID    string `query:"product_id"    doc:"Filter by product UUID"`
	Store        string `query:"store"         doc:"Filter by store name"`
	SizeCategory string `query:"size_category" doc:"Filter by size category"        enum:"volume,weight,count,"`
	Unparseable  bool   `query:"unparseable"   doc:"Only entries whose size text did not parse"`
	Limit        int    `query:"limit"         doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset       int    `query:"offset"        doc:"Pagination offset"              minimum:"0"`
	OrderBy      string `query:"order_by"      doc:"Sort field"                     enum:"price_per_unit,price,updated_at,"`
}

// ListEntriesOutput is the response for listing entries.
type ListEntriesOutput struct {
	Body struct {
		Entries []domain.Entry `json:"entries"`
		Total   int            `json:"total"`
		Limit   int            `json:"limit"`
		Offset  int            `json:"offset"`
	}
}

// GetEntryInput is the input for getting a single entry.
type GetEntryInput struct {
	ID string `path:"id" doc:"Entry UUID"`
}

// GetEntryOutput is the response for getting a single entry.
type GetEntryOutput struct {
	Body domain.Entry
}

// UpsertEntryInput is the request body for creating or updating an entry.
// The (product, store, size text) triple identifies the entry; repeating
// it updates the price in place.
type UpsertEntryInput struct {
	Body struct {
		ProductID string  `json:"product_id"         doc:"Product UUID"              minLength:"1"`
		Store     string  `json:"store"              example:"tesco"                 minLength:"1"`
		SizeText  string  `json:"size_text"          example:"2 pints"               minLength:"1"`
		Price     float64 `json:"price"              example:"1.30"                  minimum:"0"`
		Currency  string  `json:"currency,omitempty" example:"GBP"`
	}
}

// UpsertEntryOutput is the stored entry with its derived size fields.
type UpsertEntryOutput struct {
	Status int
	Body   domain.Entry
}

// DeleteEntryInput is the input for deleting an entry.
type DeleteEntryInput struct {
	ID string `path:"id" doc:"Entry UUID"`
}

// DeleteEntryOutput is the response for deleting an entry.
type DeleteEntryOutput struct {
	Body StatusResponse
}

// --- Handlers ---

// ListEntries returns entries with optional filters.
func (h *EntriesHandler) ListEntries(
	ctx context.Context,
	input *ListEntriesInput,
) (*ListEntriesOutput, error) {
	q := &store.EntryQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.ProductID != "" {
		q.ProductID = &input.ProductID
	}
	if input.Store != "" {
		q.Store = &input.Store
	}
	if input.SizeCategory != "" {
		q.SizeCategory = &input.SizeCategory
	}
	if input.Unparseable {
		comparable := false
		q.Comparable = &comparable
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	entries, total, err := h.store.ListEntries(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("entry query failed: " + err.Error())
	}

	if entries == nil {
		entries = []domain.Entry{}
	}

	resp := &ListEntriesOutput{}
	resp.Body.Entries = entries
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// GetEntry returns a single entry by ID.
func (h *EntriesHandler) GetEntry(
	ctx context.Context,
	input *GetEntryInput,
) (*GetEntryOutput, error) {
	e, err := h.store.GetEntry(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("entry not found")
	}
	return &GetEntryOutput{Body: *e}, nil
}

// UpsertEntry creates or updates an entry, deriving its comparable size
// fields from the raw size text. Unparseable text is accepted; the entry
// is stored without derived values.
func (h *EntriesHandler) UpsertEntry(
	ctx context.Context,
	input *UpsertEntryInput,
) (*UpsertEntryOutput, error) {
	currency := input.Body.Currency
	if currency == "" {
		currency = "GBP"
	}

	e := &domain.Entry{
		ProductID: input.Body.ProductID,
		Store:     input.Body.Store,
		SizeText:  input.Body.SizeText,
		Price:     input.Body.Price,
		Currency:  currency,
	}

	d := h.deriver.Derive(e.SizeText, e.Price)
	e.SizeDisplay = d.SizeDisplay
	e.SizeCategory = d.SizeCategory
	e.NormalizedValue = d.NormalizedValue
	e.PricePerUnit = d.PricePerUnit

	if err := h.store.UpsertEntry(ctx, e); err != nil {
		return nil, huma.Error500InternalServerError("storing entry failed: " + err.Error())
	}

	return &UpsertEntryOutput{Status: http.StatusCreated, Body: *e}, nil
}

// DeleteEntry removes an entry.
func (h *EntriesHandler) DeleteEntry(
	ctx context.Context,
	input *DeleteEntryInput,
) (*DeleteEntryOutput, error) {
	if err := h.store.DeleteEntry(ctx, input.ID); err != nil {
		return nil, huma.Error500InternalServerError("deleting entry failed: " + err.Error())
	}

	resp := &DeleteEntryOutput{}
	resp.Body.Status = "deleted"
	return resp, nil
}

// RegisterEntryRoutes registers entry endpoints with the Huma API.
func RegisterEntryRoutes(api huma.API, h *EntriesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-entries",
		Method:      http.MethodGet,
		Path:        "/api/v1/entries",
		Summary:     "List entries",
		Description: "Returns store entries with optional product, store, and category filters.",
		Tags:        []string{"entries"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListEntries)

	huma.Register(api, huma.Operation{
		OperationID: "get-entry",
		Method:      http.MethodGet,
		Path:        "/api/v1/entries/{id}",
		Summary:     "Get an entry",
		Tags:        []string{"entries"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetEntry)

	huma.Register(api, huma.Operation{
		OperationID: "upsert-entry",
		Method:      http.MethodPost,
		Path:        "/api/v1/entries",
		Summary:     "Create or update an entry",
		Description: "Stores a priced package for a product at a store, deriving " +
			"its display size, category, and unit price from the raw size text.",
		Tags:          []string{"entries"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusInternalServerError},
	}, h.UpsertEntry)

	huma.Register(api, huma.Operation{
		OperationID: "delete-entry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/entries/{id}",
		Summary:     "Delete an entry",
		Tags:        []string{"entries"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.DeleteEntry)
}
