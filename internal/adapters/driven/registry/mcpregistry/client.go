// Package mcpregistry implements driven.RegistryClient against the remote
// connector registry's HTTP API.
//
// The registry owns indexing and ranking; this client only decodes and
// preserves result order. Requests are throttled client-side and can carry
// a bearer token for authenticated registries.
package mcpregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

const (
	// DefaultBaseURL is the public connector registry.
	DefaultBaseURL = "https://registry.modelcontextprotocol.io"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestRate is the proactive client-side throttle (requests/second).
	requestRate = 2

	// searchLimit caps how many results one search requests.
	searchLimit = 20
)

// Ensure Client implements the interface.
var _ driven.RegistryClient = (*Client)(nil)

// Client talks to the connector registry over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different registry.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithToken authenticates requests with a static bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		c.http = oauth2.NewClient(context.Background(), ts)
		c.http.Timeout = DefaultTimeout
	}
}

// NewClient creates a registry client for the default public registry.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the registry and returns descriptors in registry ranking
// order.
func (c *Client) Search(ctx context.Context, query string) ([]domain.ConnectorDescriptor, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", fmt.Sprintf("%d", searchLimit))

	var response searchResponse
	if err := c.get(ctx, "/v0/servers?"+params.Encode(), &response); err != nil {
		return nil, err
	}

	logger.Debug("Registry returned %d result(s) for %q", len(response.Servers), query)
	descriptors := make([]domain.ConnectorDescriptor, 0, len(response.Servers))
	for _, entry := range response.Servers {
		descriptors = append(descriptors, entry.Server.toDescriptor())
	}
	return descriptors, nil
}

// Get fetches a single descriptor by qualified name.
func (c *Client) Get(ctx context.Context, qualifiedName string) (*domain.ConnectorDescriptor, error) {
	var entry serverEntry
	path := "/v0/servers/" + url.PathEscape(qualifiedName)
	if err := c.get(ctx, path, &entry); err != nil {
		return nil, err
	}
	if entry.Server.Name == "" {
		return nil, domain.ErrNotFound
	}
	desc := entry.Server.toDescriptor()
	return &desc, nil
}

// get performs a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("registry returned %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
