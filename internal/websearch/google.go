// Package websearch looks companies up through the Google Custom Search
// JSON API.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const googleDefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// ErrNotConfigured indicates the API key or engine id is missing.
var ErrNotConfigured = errors.New("google search API not configured (GOOGLE_SEARCH_API_KEY / GOOGLE_SEARCH_CX)")

// CompanyResult is one normalized search hit.
type CompanyResult struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet"`
	DisplayURL string `json:"displayUrl"`
}

// Client calls the Google Custom Search JSON API.
type Client struct {
	APIKey     string
	CX         string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient constructs a Client with a sane request timeout.
func NewClient(apiKey, cx string) *Client {
	return &Client{
		APIKey:     apiKey,
		CX:         cx,
		BaseURL:    googleDefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type googleResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

// Search runs one query, appending the location when present.
func (c *Client) Search(ctx context.Context, query, location string) ([]CompanyResult, error) {
	if c.APIKey == "" || c.CX == "" {
		return nil, ErrNotConfigured
	}

	searchQuery := query
	if location != "" {
		searchQuery = query + " " + location
	}

	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("cx", c.CX)
	params.Set("q", searchQuery)
	params.Set("num", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("google search: status %d", resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("google search: decode: %w", err)
	}

	results := make([]CompanyResult, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, CompanyResult{
			Name:       item.Title,
			URL:        item.Link,
			Snippet:    item.Snippet,
			DisplayURL: item.DisplayLink,
		})
	}
	return results, nil
}
