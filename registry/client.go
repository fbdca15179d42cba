package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client configuration defaults.
const (
	// DefaultBaseURL is the public PyPI JSON API.
	DefaultBaseURL = "https://pypi.org/pypi"

	DefaultMaxIdleConns        = 50
	DefaultMaxIdleConnsPerHost = 20
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultRequestTimeout      = 10 * time.Second
)

// Client fetches package metadata from a PyPI-compatible index.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	// packageCache memoizes responses for the client's lifetime.
	packageCache sync.Map // map[string]*Package keyed by normalized name

	validateResponses bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different index, e.g. a private mirror
// or a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets a custom HTTP request timeout.
// Zero or negative values fall back to the default timeout (10 seconds).
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		} else {
			c.client.Timeout = DefaultRequestTimeout
		}
	}
}

// WithValidation enables or disables validation of index responses.
func WithValidation(enabled bool) ClientOption {
	return func(c *Client) {
		c.validateResponses = enabled
	}
}

// WithLogger sets a structured logger for fetch diagnostics.
// If not set, logging is disabled.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the given package index. With no options it
// talks to PyPI with a 10-second request timeout.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout:   DefaultRequestTimeout,
			Transport: transport,
		},
		logger:            slog.New(slog.DiscardHandler),
		validateResponses: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the index base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetPackage fetches a package's published metadata.
// Results are cached by package name for the client's lifetime; failures are
// not cached, so a transient network error does not poison later lookups.
func (c *Client) GetPackage(ctx context.Context, name string) (*Package, error) {
	key := normalizeName(name)
	if cached, ok := c.packageCache.Load(key); ok {
		return cached.(*Package), nil
	}

	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))
	data, err := c.fetch(ctx, endpoint)
	if err != nil {
		c.logger.Warn("failed to fetch package metadata", "package", name, "error", err)
		return nil, err
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		c.logger.Warn("failed to parse package metadata", "package", name, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, name, err)
	}

	if c.validateResponses {
		if err := pkg.Validate(); err != nil {
			c.logger.Warn("package metadata failed validation", "package", name, "error", err)
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedMetadata, name, err)
		}
	}

	c.packageCache.Store(key, &pkg)
	return &pkg, nil
}

// ClearCache removes all cached metadata.
func (c *Client) ClearCache() {
	c.packageCache = sync.Map{}
}

// fetch performs an HTTP GET and returns the response body. A 404 maps to
// ErrPackageNotFound; every other failure maps to ErrUnavailable.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, endpoint)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	return body, nil
}

// normalizeName lowercases a package name for cache keying. PyPI treats
// names case-insensitively.
func normalizeName(name string) string {
	return strings.ToLower(name)
}
