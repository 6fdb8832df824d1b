package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coverply/warranty-admin/internal/models"
)

// Resource is one catalog entry as returned by the host platform's lookup
// endpoint.
type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// Client talks to the host platform's catalog lookup API. It is the only
// place the admin service reaches outside its own database.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search returns catalog entries matching the query for the picker UI.
func (c *Client) Search(ctx context.Context, query string, kind models.ResourceType) ([]Resource, error) {
	endpoint := c.baseURL + "/catalog/products"
	if kind == models.ResourceTypeCollection {
		endpoint = c.baseURL + "/catalog/collections"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Resources []Resource `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.Resources, nil
}

// CollectionProducts returns the product ids belonging to a collection,
// used when building a resolution snapshot.
func (c *Client) CollectionProducts(ctx context.Context, collectionID string) ([]string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/catalog/collections/"+url.PathEscape(collectionID)+"/products",
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("collection lookup failed with status: %d", resp.StatusCode)
	}

	var result struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.ProductIDs, nil
}
