// Package transport provides the shared HTTP client used by the scraping,
// storage, and registry collaborators, with pluggable authentication.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/brandmap/brandmap/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests. Scrapes of
// large member pages can take a while; downloads of individual logos cannot.
var DefaultHTTPTimeout = 60 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
}

// WithTimeout returns the client with a replaced request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.http.Timeout = d
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(url, 0, err)
	}
	return c.Do(req)
}

// PostJSON performs a POST request with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewFetchError(url, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req)
}

// Download fetches a URL and returns its bytes and content type. Non-2xx
// responses and transport errors are reported as FetchErrors.
func (c *Client) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.NewFetchError(url, 0, err)
	}
	// Some member sites refuse requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; brandmap/1.0)")
	req.Header.Set("Accept", "*/*")

	resp, err := c.Do(req)
	if err != nil {
		return nil, "", errors.NewFetchError(url, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errors.NewFetchError(url, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.NewFetchError(url, 0, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
