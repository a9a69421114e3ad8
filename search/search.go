package search

import (
	"context"
	"fmt"

	"newslens/config"

	"github.com/go-resty/resty/v2"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Snippet is one web-search result reduced to the text the chat prompt needs.
type Snippet struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Searcher abstracts the web-search collaborator so handlers can inject mocks.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Snippet, error)
}

// Client calls the web-search REST API.
type Client struct {
	http     *resty.Client
	apiKey   string
	endpoint string
}

// NewClient builds a search client with the given API key.
func NewClient(apiKey string) *Client {
	c := resty.New()
	c.SetTimeout(config.SearchTimeout)
	return &Client{http: c, apiKey: apiKey, endpoint: defaultEndpoint}
}

// NewClientWithEndpoint is used by tests to point at a local server.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []Snippet `json:"results"`
}

// Search returns up to config.SearchMaxResults text snippets for the query.
func (c *Client) Search(ctx context.Context, query string) ([]Snippet, error) {
	var parsed searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(searchRequest{APIKey: c.apiKey, Query: query, MaxResults: config.SearchMaxResults}).
		SetResult(&parsed).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return parsed.Results, nil
}
