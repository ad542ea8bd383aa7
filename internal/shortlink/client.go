// Package shortlink talks to the external service that swaps raw platform
// URLs for tracked redirect URLs.
package shortlink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appLog "punktual/internal/log"
	"punktual/internal/model"
)

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when no endpoint is set.
var ErrNotConfigured = errors.New("shortlink: endpoint not configured")

type createRequest struct {
	Links  model.LinkMap `json:"links"`
	Title  string        `json:"title"`
	UserID string        `json:"userId,omitempty"`
}

type createResponse struct {
	Links map[model.PlatformID]string `json:"links"`
	Error string                      `json:"error,omitempty"`
}

// Client calls the short-link endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client posting to endpoint. A zero timeout uses 10s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// CreateShortLinks exchanges links for tracked URLs. The result always has
// every key of links; entries the service leaves out or blanks keep their
// original value.
func (c *Client) CreateShortLinks(ctx context.Context, links model.LinkMap, title, userID, accessToken string) (model.LinkMap, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(createRequest{Links: links, Title: title, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("shortlink: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("shortlink: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shortlink: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("shortlink: read response: %w", err)
	}

	var out createResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(raw, &out) == nil && out.Error != "" {
			return nil, fmt.Errorf("shortlink: status %d: %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("shortlink: unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("shortlink: decode response: %w", err)
	}

	merged := make(model.LinkMap, len(links))
	for id, u := range links {
		merged[id] = u
		if short := out.Links[id]; short != "" {
			merged[id] = short
		}
	}

	appLog.Debug("short links created", "count", len(out.Links), "user", userID != "")
	return merged, nil
}
