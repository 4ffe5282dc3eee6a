// Package categorizer wraps the external transaction-categorization API.
// The service assigns a category and a cleaned description to free-text
// transaction descriptions; everything about how it does that (model calls,
// rules) is its own concern. This package only speaks its HTTP contract.
package categorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Item is one description to classify, keyed by transaction ID.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
}

// Result is the enrichment returned for one transaction.
type Result struct {
	ID                 string `json:"id"`
	Category           string `json:"category"`
	CleanedDescription string `json:"cleanedDescription"`
}

// Client calls the categorizer API over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a categorizer client for the given base URL. token may be
// empty when the endpoint does not require authentication.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type classifyRequest struct {
	Transactions []Item `json:"transactions"`
}

type classifyResponse struct {
	Results []Result `json:"results"`
}

// Classify sends one batch of transactions for categorization and returns
// the enrichment per transaction. Transactions the service could not classify
// are simply absent from the result; callers leave those rows untouched.
func (c *Client) Classify(ctx context.Context, items []Item) ([]Result, error) {
	if len(items) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(classifyRequest{Transactions: items})
	if err != nil {
		return nil, fmt.Errorf("failed to encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("categorizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("categorizer returned status %d: %s", resp.StatusCode, payload)
	}

	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode classify response: %w", err)
	}

	return decoded.Results, nil
}
