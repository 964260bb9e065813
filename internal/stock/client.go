// Package stock is the HTTP client for the stock and product catalog API.
package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MiniCart/internal/cart"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadStatus   = errors.New("bad status")
	ErrUnavailable = errors.New("stock api unavailable")
)

const defaultTimeout = 3 * time.Second

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// GetStock fetches GET /stock/{id}. Results are never cached.
func (c *Client) GetStock(ctx context.Context, productID int) (cart.Stock, error) {
	var s cart.Stock
	if err := c.getJSON(ctx, fmt.Sprintf("/stock/%d", productID), &s); err != nil {
		return cart.Stock{}, err
	}
	return s, nil
}

// GetProduct fetches GET /products/{id}.
func (c *Client) GetProduct(ctx context.Context, productID int) (cart.Product, error) {
	var p cart.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", productID), &p); err != nil {
		return cart.Product{}, err
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s status=%d", ErrBadStatus, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
