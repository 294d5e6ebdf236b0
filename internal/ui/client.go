// Package ui implements the catalog's client-side state controller: a
// typed HTTP client for the products API, a view state machine mirroring
// the single-page frontend, and the presentational views it drives.
package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Product mirrors the JSON representation served by the products API.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// ProductFields is the payload of a create or edit submission.
type ProductFields struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Client is a typed HTTP client for the products API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the products API rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// List fetches all products.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create posts a new product and returns the created record.
func (c *Client) Create(ctx context.Context, fields ProductFields) (*Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "/api/products", fields, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update puts the given fields to the product with the given ID and returns
// the updated record.
func (c *Client) Update(ctx context.Context, id string, fields ProductFields) (*Product, error) {
	var updated Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the product with the given ID.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil)
}

// do issues a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil. Non-2xx responses are returned as
// errors carrying the server's error message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
