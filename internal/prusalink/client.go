package prusalink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prusa_thermal/internal/models"
)

// PrusaLink endpoints and headers.
const (
	statusPath   = "/api/v1/status"
	infoPath     = "/api/v1/info"
	apiKeyHeader = "X-Api-Key"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20 // 1 MB
	errBodyPreview = 100
)

// Client performs single, non-retried requests against a PrusaLink printer.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A client without a
// timeout gets the configured one so a stuck printer cannot hang a poll.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Timeout <= 0 {
			clone := *hc
			clone.Timeout = c.httpClient.Timeout
			hc = &clone
		}
		c.httpClient = hc
	}
}

// NewClient builds a client for the printer described by cfg.
func NewClient(cfg models.DeviceConfig, opts ...Option) (*Client, error) {
	base, err := parseAddress(cfg.Address)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetStatus fetches the printer section of /api/v1/status.
// Failures wrap models.ErrCommunicationFailure or models.ErrUnauthorized.
func (c *Client) GetStatus(ctx context.Context) (models.PrinterStatus, error) {
	var resp models.StatusResponse
	if err := c.getJSON(ctx, statusPath, &resp); err != nil {
		return models.PrinterStatus{}, err
	}
	return resp.Printer, nil
}

// GetInfo fetches /api/v1/info using the same failure classification as GetStatus.
func (c *Client) GetInfo(ctx context.Context) (models.PrinterInfo, error) {
	var info models.PrinterInfo
	if err := c.getJSON(ctx, infoPath, &info); err != nil {
		return models.PrinterInfo{}, err
	}
	return info, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	reqURL := strings.TrimRight(c.baseURL.String(), "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", models.ErrCommunicationFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", models.ErrCommunicationFailure, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A 401 is classified on the status line alone; its body is irrelevant.
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: printer rejected api key", models.ErrUnauthorized)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", models.ErrCommunicationFailure, path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned %d: %s",
			models.ErrCommunicationFailure, path, resp.StatusCode, truncate(data, errBodyPreview))
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", models.ErrCommunicationFailure, path, err)
	}
	return nil
}

// parseAddress accepts "host", "host:port" or a full http(s) base URL.
func parseAddress(addr string) (*url.URL, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("printer address is empty")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid printer address %q: %w", addr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in printer address", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("printer address %q has no host", addr)
	}
	return u, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
