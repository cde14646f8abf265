package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopd-dev/shopd/internal/cli/api"
)

// Product is a storefront listing.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	ImageURL      string   `json:"imageUrl"`
	Category      Category `json:"category"`
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	CategoryID    int     `json:"categoryId"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

// UploadResult is returned by the image upload endpoint.
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
}

// Products wraps the product endpoints.
type Products struct {
	client *api.Client
}

// NewProducts creates the product service.
func NewProducts(client *api.Client) *Products {
	return &Products{client: client}
}

// ListQuery narrows and pages the product list. The zero value fetches
// everything.
type ListQuery struct {
	CategoryID int
	Search     string
	Limit      int
	Offset     int
}

func (q ListQuery) values() url.Values {
	params := url.Values{}
	if q.CategoryID > 0 {
		params.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

// List fetches products matching the query.
func (p *Products) List(ctx context.Context, query ListQuery) ([]Product, error) {
	resp, err := p.client.Get(ctx, "/api/products", query.values())
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := unwrap(resp.Data, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product by ID.
func (p *Products) Get(ctx context.Context, id int) (*Product, error) {
	resp, err := p.client.Get(ctx, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := unwrap(resp.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create adds a product. When an image path is given it is uploaded first
// and the resulting URL is attached to the listing.
func (p *Products) Create(ctx context.Context, input ProductInput, imagePath string) (*Product, error) {
	if imagePath != "" {
		imageURL, err := p.UploadImage(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		input.ImageURL = imageURL
	}

	resp, err := p.client.Post(ctx, "/api/products/createProduct", input)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := unwrap(resp.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces a product's fields.
func (p *Products) Update(ctx context.Context, id int, input ProductInput, imagePath string) (*Product, error) {
	if imagePath != "" {
		imageURL, err := p.UploadImage(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		input.ImageURL = imageURL
	}

	resp, err := p.client.Put(ctx, fmt.Sprintf("/api/products/%d", id), input)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := unwrap(resp.Data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product.
func (p *Products) Delete(ctx context.Context, id int) error {
	_, err := p.client.Delete(ctx, fmt.Sprintf("/api/products/%d", id))
	return err
}

// UploadImage sends one image file and returns its served URL.
func (p *Products) UploadImage(ctx context.Context, path string) (string, error) {
	file, err := api.FileFromPath(path)
	if err != nil {
		return "", &api.UploadValidationError{Reason: err.Error()}
	}

	payload, err := p.client.UploadFiles(ctx, "/api/upload", file)
	if err != nil {
		return "", err
	}

	var result UploadResult
	if err := unwrap(payload, &result); err != nil {
		return "", fmt.Errorf("failed to decode upload result: %w", err)
	}
	if result.ImageURL == "" {
		return "", fmt.Errorf("upload response carried no image URL")
	}
	return result.ImageURL, nil
}
