// Package apiclient is the typed HTTP client for the upstream ERP backend.
// It is the single place that knows the backend's conventions: bearer auth,
// filter[field] query parameters, inconsistent response envelopes, and the
// structured error payloads described in the API contract.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stockdesk/internal/core/httpclient"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/metrics"

	"go.uber.org/zap"
)

// Config holds the connection settings for the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. https://erp.example.com.
	BaseURL string
	// APIToken is sent as a bearer token on every request.
	APIToken string
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// Metrics records request counts and durations. Required.
	Metrics *metrics.Recorder
}

// Client issues requests against the backend REST API. Every call returns
// either the raw response body or a typed error; the client itself never
// panics or retries.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	token   string
	rec     *metrics.Recorder
	log     *zap.Logger
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute: %s", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: parsed,
		httpc:   httpclient.NewClient(timeout),
		token:   cfg.APIToken,
		rec:     cfg.Metrics,
		log:     logger.Get(),
	}, nil
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body (full update).
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body (partial update).
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	endpoint := *c.baseURL
	endpoint.Path = joinPath(endpoint.Path, path)
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.rec.ObserveUpstreamRequest(method, "transport_error", time.Since(start))
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.rec.ObserveUpstreamRequest(method, "read_error", time.Since(start))
		return nil, fmt.Errorf("read backend response: %w", err)
	}
	c.rec.ObserveUpstreamRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, c.unprocessableError(raw)
	default:
		c.log.Warn("backend request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: messageFrom(raw, resp.Status),
			Raw:     raw,
		}
	}
}

// unprocessableError classifies a 422 body. Stock-shortage payloads are
// passed through unprocessed so callers can drive the backorder flow;
// everything else becomes a ValidationError.
func (c *Client) unprocessableError(raw []byte) error {
	if shortage := parseStockShortage(raw); shortage != nil {
		return shortage
	}
	return parseValidationError(raw)
}

// joinPath concatenates the base path and the request path without
// doubling slashes. url.JoinPath is avoided so encoded segments in ids
// survive untouched.
func joinPath(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	if base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + p
}
