package store

import (
	"context"
	"fmt"

	"github.com/shopd-dev/shopd/internal/cli/api"
)

// Category is a product grouping managed from the admin screens.
type Category struct {
	CategoryID   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// CreateCategoryRequest names a new category.
type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

// Categories wraps the category endpoints.
type Categories struct {
	client *api.Client
}

// NewCategories creates the category service.
func NewCategories(client *api.Client) *Categories {
	return &Categories{client: client}
}

// List fetches all categories. The list endpoint sometimes wraps its payload
// twice; unwrap handles both shapes.
func (c *Categories) List(ctx context.Context) ([]Category, error) {
	resp, err := c.client.Get(ctx, "/api/category", nil)
	if err != nil {
		return nil, err
	}

	var categories []Category
	if err := unwrap(resp.Data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create adds a category.
func (c *Categories) Create(ctx context.Context, name string) (*Category, error) {
	resp, err := c.client.Post(ctx, "/api/category", CreateCategoryRequest{CategoryName: name})
	if err != nil {
		return nil, err
	}

	var category Category
	if err := unwrap(resp.Data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category.
func (c *Categories) Update(ctx context.Context, id int, name string) (*Category, error) {
	resp, err := c.client.Put(ctx, fmt.Sprintf("/api/category/%d", id), CreateCategoryRequest{CategoryName: name})
	if err != nil {
		return nil, err
	}

	var category Category
	if err := unwrap(resp.Data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category.
func (c *Categories) Delete(ctx context.Context, id int) error {
	_, err := c.client.Delete(ctx, fmt.Sprintf("/api/category/%d", id))
	return err
}
