package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apimgr/swapi/src/common/version"
)

// ProjectName is used for the User-Agent
const ProjectName = "swapi"

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "https://swapi.dev/api"

// Cache stores successful response bodies keyed by request URL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
}

// Client is the API client for the Star Wars API.
// It holds configuration only; every request acquires and releases its own
// HTTP client.
type Client struct {
	BaseURL string
	// Timeout of 0 means no timeout
	Timeout time.Duration

	// Transport overrides the default round tripper, mainly for tests
	Transport http.RoundTripper
	Cache     Cache
	Logger    *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: time.Duration(timeout) * time.Second,
	}
}

// FetchByID returns the raw body of GET {BaseURL}/people/{id}
func (c *Client) FetchByID(ctx context.Context, id string) (string, error) {
	return c.get(ctx, "/people/"+url.PathEscape(id))
}

// FetchSearch returns the raw body of GET {BaseURL}/people/?search={term}
func (c *Client) FetchSearch(ctx context.Context, term string) (string, error) {
	return c.get(ctx, "/people/?search="+url.QueryEscape(term))
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// newHTTPClient builds a client scoped to a single request
func (c *Client) newHTTPClient() *http.Client {
	transport := c.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &http.Client{
		Transport: transport,
		Timeout:   c.Timeout,
	}
}

// get performs a GET request and returns the body text
func (c *Client) get(ctx context.Context, path string) (string, error) {
	target := c.BaseURL + path
	log := c.logger().With("request_id", uuid.NewString(), "url", target)

	if c.Cache != nil {
		if data, ok := c.Cache.Get(target); ok {
			log.Debug("cache hit")
			return string(data), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &TransportError{URL: target, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", version.Get().UserAgent(ProjectName+"-cli"))
	req.Header.Set("Accept", "application/json")

	hc := c.newHTTPClient()
	defer hc.CloseIdleConnections()

	start := time.Now()
	log.Debug("request started")

	resp, err := hc.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return "", &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("request finished", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if c.Cache != nil {
		c.Cache.Set(target, data)
	}
	return string(data), nil
}
