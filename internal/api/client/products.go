package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/pantrylab/shelfmatch/pkg/types"
)

// productRequest contains only the fields the API accepts for create/update.
type productRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ProductsResponse wraps a paginated products response.
type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProductsParams defines query parameters for product queries.
type ListProductsParams struct {
	Category string
	Name     string
	Limit    int
	Offset   int
	OrderBy  string
}

// ListProducts returns products matching the given parameters.
func (c *Client) ListProducts(
	ctx context.Context,
	params *ListProductsParams,
) (*ProductsResponse, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Name != "" {
		q.Set("name", params.Name)
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

	path := "/api/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/api/v1/products/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, name, category string) (*domain.Product, error) {
	var created domain.Product
	req := productRequest{Name: name, Category: category}
	if err := c.post(ctx, "/api/v1/products", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var updated domain.Product
	req := productRequest{Name: p.Name, Category: p.Category}
	if err := c.put(ctx, "/api/v1/products/"+p.ID, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a product by ID. Its store entries cascade.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.del(ctx, "/api/v1/products/"+id, nil)
}
