package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// timeout for a full comic request; image providers retry with backoff
const requestTimeout = 3 * time.Minute

// manages HTTP requests to the satirist REST API
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// creates a client for endpoint. token may be empty for the public endpoints
func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// a non-2xx answer from the API
type APIError struct {
	Status  int
	Code    string `json:"error"`
	Message string `json:"message"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Comic struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	AIGenerated bool   `json:"aiGenerated"`
	Dialogue    string `json:"dialogue"`
	Description string `json:"description"`
	Provider    string `json:"provider"`
}

type Usage struct {
	Allowed   bool   `json:"allowed"`
	Current   int    `json:"current"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

func (c *Client) Quote(ctx context.Context, situation string) (string, error) {
	var resp struct {
		Quote string `json:"quote"`
	}

	err := c.do(ctx, http.MethodPost, "/api/v1/generate-quote", map[string]string{"situation": situation}, &resp)
	return resp.Quote, err
}

func (c *Client) Description(ctx context.Context, situation, quote string) (string, error) {
	var resp struct {
		Description string `json:"description"`
	}

	err := c.do(ctx, http.MethodPost, "/api/v1/generate-description", map[string]string{
		"situation": situation,
		"quote":     quote,
	}, &resp)

	return resp.Description, err
}

func (c *Client) Comic(ctx context.Context, situation, quote, description string) (*Comic, error) {
	var resp struct {
		Comic *Comic `json:"comic"`
	}

	err := c.do(ctx, http.MethodPost, "/api/v1/generate-comic", map[string]string{
		"situation":   situation,
		"quote":       quote,
		"description": description,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Comic == nil {
		return nil, fmt.Errorf("response did not contain a comic")
	}

	return resp.Comic, nil
}

func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	var resp Usage

	if err := c.do(ctx, http.MethodGet, "/api/v1/check-usage", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr) // body may not be JSON behind a proxy
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
