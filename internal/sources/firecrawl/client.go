// Package firecrawl implements the scraped-source collaborator using the
// Firecrawl v2 scrape API. It turns a member-directory page into the
// (label, image URL) pairs the ingestion pipeline consumes, and can also
// return the structured branding document for the guidelines renderer.
package firecrawl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/brandmap/brandmap/internal/transport"
	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/logging"
	"github.com/brandmap/brandmap/pkg/types"
)

// DefaultBaseURL is the hosted Firecrawl API endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// ScrapeTimeout bounds a single scrape request. Rendering a large member
// directory takes far longer than the transport default allows for.
const ScrapeTimeout = 2 * time.Minute

// Scrape formats.
const (
	FormatMarkdown = "markdown"
	FormatBranding = "branding"
)

// Client calls the Firecrawl scrape API.
type Client struct {
	baseURL string
	client  *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// New creates a Firecrawl client. The API key is required by the hosted
// service.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  transport.New(&transport.BearerAuth{Token: apiKey}).WithTimeout(ScrapeTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document is the scrape result, carrying only the formats we request.
type Document struct {
	Markdown string          `json:"markdown"`
	Branding *types.Branding `json:"branding,omitempty"`
	Metadata struct {
		SourceURL string `json:"sourceURL"`
		Title     string `json:"title"`
	} `json:"metadata"`
}

// scrapeResponse is the API envelope.
type scrapeResponse struct {
	Success bool     `json:"success"`
	Data    Document `json:"data"`
	Error   string   `json:"error,omitempty"`
}

// Scrape fetches a page in the requested formats.
func (c *Client) Scrape(ctx context.Context, url string, formats ...string) (*Document, error) {
	if len(formats) == 0 {
		formats = []string{FormatMarkdown}
	}

	payload, err := json.Marshal(map[string]any{
		"url":     url,
		"formats": formats,
	})
	if err != nil {
		return nil, errors.NewAPIError("firecrawl", 0, err.Error())
	}

	logging.Ctx(ctx).Debug().
		Str("url", url).
		Strs("formats", formats).
		Msg("scraping page")

	resp, err := c.client.PostJSON(ctx, c.baseURL+"/v2/scrape", payload)
	if err != nil {
		return nil, &errors.APIError{Service: "firecrawl", Endpoint: "/v2/scrape", Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.APIError{Service: "firecrawl", Endpoint: "/v2/scrape", Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewAPIError("firecrawl", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &errors.APIError{Service: "firecrawl", Endpoint: "/v2/scrape", Message: "malformed response", Err: err}
	}
	if !parsed.Success {
		return nil, errors.NewAPIError("firecrawl", resp.StatusCode, fmt.Sprintf("unsuccessful scrape: %s", parsed.Error))
	}

	return &parsed.Data, nil
}

// Image is one image reference found on a scraped page.
type Image struct {
	Alt string
	URL string
}

// imagePattern matches markdown image references: ![alt](url).
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// ExtractImages returns every image reference in a markdown document, in
// document order. Alt text is the free-text label the resolver matches on.
func ExtractImages(markdown string) []Image {
	matches := imagePattern.FindAllStringSubmatch(markdown, -1)
	images := make([]Image, 0, len(matches))
	for _, m := range matches {
		images = append(images, Image{
			Alt: strings.TrimSpace(m[1]),
			URL: strings.TrimSpace(m[2]),
		})
	}
	return images
}

// Images returns the image references found in the document's markdown.
func (d *Document) Images() []Image {
	return ExtractImages(d.Markdown)
}
