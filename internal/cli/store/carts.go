package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopd-dev/shopd/internal/cli/api"
)

// CartItem is one product line in a cart.
type CartItem struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the authenticated user's cart.
type Cart struct {
	ID    int        `json:"id"`
	Items []CartItem `json:"items"`
}

// Carts wraps the cart endpoints.
type Carts struct {
	client *api.Client
}

// NewCarts creates the cart service.
func NewCarts(client *api.Client) *Carts {
	return &Carts{client: client}
}

// Get fetches the current cart.
func (c *Carts) Get(ctx context.Context) (*Cart, error) {
	resp, err := c.client.Get(ctx, "/api/cart", nil)
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := unwrap(resp.Data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Add puts a product into the cart. The endpoint takes query parameters and
// an empty body.
func (c *Carts) Add(ctx context.Context, productID, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	params := url.Values{
		"productId": []string{strconv.Itoa(productID)},
		"quantity":  []string{strconv.Itoa(quantity)},
	}
	_, err := c.client.PostParams(ctx, "/api/cart/add", params)
	return err
}

// UpdateItemRequest sets a cart line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets the quantity on one cart line.
func (c *Carts) UpdateItem(ctx context.Context, itemID, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	resp, err := c.client.Put(ctx, fmt.Sprintf("/api/cart/item/%d", itemID), UpdateItemRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}

	var item CartItem
	if err := unwrap(resp.Data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one cart line by its item ID.
func (c *Carts) RemoveItem(ctx context.Context, itemID int) error {
	_, err := c.client.Delete(ctx, fmt.Sprintf("/api/cart/item/%d", itemID))
	return err
}
