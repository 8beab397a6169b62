// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package websearch provides access to Tavily-compatible web search APIs.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the Tavily search API endpoint.
const DefaultEndpoint = "https://api.tavily.com/search"

// DefaultMaxResults caps how many results a single search returns.
const DefaultMaxResults = 20

// Searcher issues a web search and returns scored results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Client talks to a Tavily-compatible search API. It accepts multiple API
// keys and fails over to the next key when a request errors.
type Client struct {
	endpoint   string
	keys       []string
	maxResults int
	depth      string
	window     time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Searcher = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) error {
		if endpoint == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithMaxResults caps the result count per search.
func WithMaxResults(n int) ClientOption {
	return func(c *Client) error {
		if n <= 0 {
			return fmt.Errorf("max results must be positive, got %d", n)
		}
		c.maxResults = n
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithSearchWindow restricts results to the given trailing time window.
// Zero disables the date restriction.
func WithSearchWindow(window time.Duration) ClientOption {
	return func(c *Client) error {
		if window < 0 {
			return fmt.Errorf("search window cannot be negative")
		}
		c.window = window
		return nil
	}
}

// WithSearchLogger sets the logger used for failover warnings.
func WithSearchLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// NewClient builds a search client. Empty strings in keys are skipped; at
// least one non-empty key is required.
func NewClient(keys []string, opts ...ClientOption) (*Client, error) {
	usable := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			usable = append(usable, key)
		}
	}
	if len(usable) == 0 {
		return nil, ErrNoAPIKeys
	}

	c := &Client{
		endpoint:   DefaultEndpoint,
		keys:       usable,
		maxResults: DefaultMaxResults,
		depth:      "advanced",
		window:     365 * 24 * time.Hour,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default().With("component", "websearch"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type searchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer string `json:"include_answer,omitempty"`
	MaxResults    int    `json:"max_results"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
}

// Response is a full search API response.
type Response struct {
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
	Error   string   `json:"error,omitempty"`
}

// Search runs the query against the API, trying each key in order until one
// succeeds.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	resp, err := c.SearchFull(ctx, query)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchFull is Search with the provider's synthesized answer included.
func (c *Client) SearchFull(ctx context.Context, query string) (*Response, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	req := searchRequest{
		Query:         query,
		SearchDepth:   c.depth,
		IncludeAnswer: "advanced",
		MaxResults:    c.maxResults,
	}
	if c.window > 0 {
		now := time.Now().UTC()
		req.EndDate = now.Format(time.DateOnly)
		req.StartDate = now.Add(-c.window).Format(time.DateOnly)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	var lastErr error
	for i, key := range c.keys {
		resp, err := c.searchWithKey(ctx, key, payload)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("search attempt failed, trying next key",
			slog.Int("key_index", i), slog.Any("error", err))
		lastErr = err
	}
	return nil, fmt.Errorf("%w: last error: %v", ErrAllKeysFailed, lastErr)
}

func (c *Client) searchWithKey(ctx context.Context, key string, payload []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if result.Error != "" {
			msg = result.Error
		}
		return nil, fmt.Errorf("search API: %s", msg)
	}
	return &result, nil
}
