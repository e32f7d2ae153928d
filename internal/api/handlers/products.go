package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pantrylab/shelfmatch/internal/store"
	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// ProductsProvider defines the store methods required by the products handler.
type ProductsProvider interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, opts *store.ProductQuery) ([]domain.Product, int, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductsHandler handles product CRUD operations.
type ProductsHandler struct {
	store ProductsProvider
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s ProductsProvider) *ProductsHandler {
	return &ProductsHandler{store: s}
}

// --- Input/Output types ---

// ListProductsInput is the input for listing products with optional filters.
type ListProductsInput struct {
	Category string `query:"category" doc:"Filter by product category"`
	Name     string `query:"name"     doc:"Case-insensitive name search"`
	Limit    int    `query:"limit"    doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset   int    `query:"offset"   doc:"Pagination offset"              minimum:"0"`
	OrderBy  string `query:"order_by" doc:"Sort field"                     enum:"name,created_at,"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
}

// GetProductInput is the input for getting a single product.
type GetProductInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// GetProductOutput is the response for getting a single product.
type GetProductOutput struct {
	Body domain.Product
}

// CreateProductInput is the request body for creating a product.
type CreateProductInput struct {
	Body struct {
		Name     string `json:"name"               example:"semi-skimmed milk" minLength:"1"`
		Category string `json:"category,omitempty" example:"dairy"`
	}
}

// CreateProductOutput is the created product.
type CreateProductOutput struct {
	Status int
	Body   domain.Product
}

// UpdateProductInput is the request for updating a product.
type UpdateProductInput struct {
	ID   string `path:"id" doc:"Product UUID"`
	Body struct {
		Name     string `json:"name"               minLength:"1"`
		Category string `json:"category,omitempty"`
	}
}

// UpdateProductOutput is the updated product.
type UpdateProductOutput struct {
	Body domain.Product
}

// DeleteProductInput is the input for deleting a product.
type DeleteProductInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// DeleteProductOutput is the response for deleting a product.
type DeleteProductOutput struct {
	Body StatusResponse
}

// --- Handlers ---

// ListProducts returns products with optional category and name filters.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	q := &store.ProductQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Category != "" {
		q.Category = &input.Category
	}
	if input.Name != "" {
		q.NameLike = &input.Name
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	products, total, err := h.store.ListProducts(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}

	if products == nil {
		products = []domain.Product{}
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

// GetProduct returns a single product by ID.
func (h *ProductsHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*GetProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("product not found")
	}
	return &GetProductOutput{Body: *p}, nil
}

// CreateProduct creates a new product.
func (h *ProductsHandler) CreateProduct(
	ctx context.Context,
	input *CreateProductInput,
) (*CreateProductOutput, error) {
	p := &domain.Product{
		Name:     input.Body.Name,
		Category: input.Body.Category,
	}

	if err := h.store.CreateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("creating product failed: " + err.Error())
	}

	return &CreateProductOutput{Status: http.StatusCreated, Body: *p}, nil
}

// UpdateProduct updates an existing product.
func (h *ProductsHandler) UpdateProduct(
	ctx context.Context,
	input *UpdateProductInput,
) (*UpdateProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("product not found")
	}

	p.Name = input.Body.Name
	p.Category = input.Body.Category

	if err := h.store.UpdateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("updating product failed: " + err.Error())
	}

	return &UpdateProductOutput{Body: *p}, nil
}

// DeleteProduct removes a product and its entries.
func (h *ProductsHandler) DeleteProduct(
	ctx context.Context,
	input *DeleteProductInput,
) (*DeleteProductOutput, error) {
	if err := h.store.DeleteProduct(ctx, input.ID); err != nil {
		return nil, huma.Error500InternalServerError("deleting product failed: " + err.Error())
	}

	resp := &DeleteProductOutput{}
	resp.Body.Status = "deleted"
	return resp, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns products with optional category and name filters.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Create a product",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusInternalServerError},
	}, h.CreateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}",
		Summary:     "Update a product",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.UpdateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Method:      http.MethodDelete,
		Path:        "/api/v1/products/{id}",
		Summary:     "Delete a product",
		Description: "Deletes a product; its store entries cascade.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.DeleteProduct)
}
