// Package transport provides the HTTP client used to fetch external
// collaborator pages. Timeout and cancellation live here; callers treat
// fetches as opaque blocking calls that complete or fail.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/actonians/regsync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = 30 * time.Second

// Client provides HTTP client functionality for collaborator fetches.
type Client struct {
	http *http.Client
}

// New creates a new transport client with the default timeout.
func New() *Client {
	return &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// NewWithHTTPClient creates a transport client around an existing
// http.Client. Tests use this to point at an httptest server transport.
func NewWithHTTPClient(hc *http.Client) *Client {
	if hc == nil {
		return New()
	}
	return &Client{http: hc}
}

// Get performs a GET request with context support.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewConfigError("transport", "invalid request URL "+url, err)
	}
	req.Header.Set("Accept", "text/html")
	return c.http.Do(req)
}
