// Package seller implements the marketplace seller API client: catalog,
// stock and transit pass-through calls plus the asynchronous postings
// report pipeline (submit, poll, download, per-posting detail).
package seller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/rs/zerolog/log"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the seller API. All requests carry the Client-Id and
// Api-Key headers; payloads and responses are JSON.
type Client struct {
	baseURL  string
	clientID string
	apiKey   string
	http     *http.Client
}

// APIError is a non-200 response from the seller API. The numeric
// status code is the classification point: errors.Is(err,
// domain.ErrRateLimited) matches exactly when the code is 429.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("seller API error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == domain.ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

func NewClient(cfg config.SellerConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("seller API credentials must be provided")
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// post sends a JSON POST to path and decodes the response body into out.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not build request for %s: %w", path, err)
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
		log.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("seller API request rejected")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("could not decode response from %s: %w", path, err)
	}
	return nil
}

// get fetches an absolute URL without API headers. Report files are
// served from a plain file host, not the API itself.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response from %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}
	return raw, nil
}

func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if len(raw) > 512 {
		raw = raw[:512]
	}
	return string(raw)
}
