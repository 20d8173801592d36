package taxsdk

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultCallTimeout bounds a single upstream call.
	DefaultCallTimeout = 5 * time.Second

	// defaultClientTimeout is the http.Client backstop, above any per-call timeout.
	defaultClientTimeout = 30 * time.Second
)

// Client talks to the record service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// CallTimeout is applied to every request via context.WithTimeout.
	// Zero disables the per-call deadline and leaves only HTTPClient.Timeout.
	CallTimeout time.Duration

	// UserAgent is sent on every request when set.
	UserAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithCallTimeout sets the per-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) { c.CallTimeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// NewClient creates a record service client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		HTTPClient:  &http.Client{Timeout: defaultClientTimeout},
		CallTimeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
