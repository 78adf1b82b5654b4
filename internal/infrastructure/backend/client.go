// Package backend is the HTTP client for the managed backend: the doodle RPC
// and public storage endpoints used by the widget, and the admin endpoints
// used by the edge functions. The backend itself is a black box; only the
// wire shapes here are relied on.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/doodlemate-companion/internal/domain"
)

// Client talks to the managed backend. The API key is sent as the apikey
// header on every request; the Authorization bearer varies per call.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, httpc: &http.Client{}}
}

// do sends a request with the standard headers and returns the response body
// for 2xx statuses. Non-2xx responses map to a domain.ErrUpstream-wrapped
// error carrying the status code.
func (c *Client) do(ctx context.Context, method, url, bearer string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	return data, nil
}
