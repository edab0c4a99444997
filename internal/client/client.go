// Package client is a typed HTTP client for the Flight Planner REST API.
//
// Every operation builds its URL against a base path resolved once at
// construction, attaches the API key header when one is configured, and
// translates non-2xx responses into *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBase is the base path used when no override is configured.
	DefaultBase = "/api"

	// apiRoot marks a path that already carries the API prefix.
	apiRoot = "/api"

	// APIKeyHeader carries the access token on every request.
	APIKeyHeader = "x-api-key"
)

// Options configures a Client. Only Origin is needed when Base is relative.
type Options struct {
	// Base overrides DefaultBase. Blank means "use the default". It may be a
	// path ("/api") or an absolute URL ("https://planner.example.com/api").
	Base string

	// Origin is the scheme and host that relative URLs are resolved against,
	// e.g. "http://localhost:5173". Ignored when Base is absolute.
	Origin string

	// APIKey is sent as the x-api-key header when non-empty.
	APIKey string

	// HTTPClient defaults to a client with a 10 second timeout.
	HTTPClient *http.Client

	// Logger receives one debug line per round trip. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to the Flight Planner API. It is safe for concurrent use.
type Client struct {
	base   string
	origin *url.URL
	apiKey string
	http   *http.Client
	log    *slog.Logger
}

// New constructs a Client. It returns an error if Origin is malformed.
func New(opts Options) (*Client, error) {
	c := &Client{
		base:   ResolveBase(opts.Base),
		apiKey: opts.APIKey,
		http:   opts.HTTPClient,
		log:    opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if opts.Origin != "" {
		u, err := url.Parse(strings.TrimSpace(opts.Origin))
		if err != nil {
			return nil, fmt.Errorf("client.New: parse origin: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("client.New: origin %q must include scheme and host", opts.Origin)
		}
		c.origin = u
	}
	return c, nil
}

// ResolveBase normalizes a base path override: blank means DefaultBase,
// otherwise surrounding whitespace and one trailing slash are removed.
func ResolveBase(override string) string {
	b := strings.TrimSpace(override)
	if b == "" {
		return DefaultBase
	}
	return strings.TrimSuffix(b, "/")
}

// Base returns the resolved base path.
func (c *Client) Base() string {
	return c.base
}

// BuildURL maps a logical path to a request URL. A path that already starts
// with "/api" is used unchanged so it is never prefixed twice; any other path
// is appended to the base.
func (c *Client) BuildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasPrefix(path, apiRoot) {
		return path
	}
	return c.base + path
}

// resolve turns the output of BuildURL into an absolute URL.
func (c *Client) resolve(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		return u, nil
	}
	if c.origin == nil {
		return nil, fmt.Errorf("relative URL %q needs an origin", raw)
	}
	return c.origin.ResolveReference(u), nil
}

// newRequest builds a request for path with an optional JSON body.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	u, err := c.resolve(c.BuildURL(path))
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)
	return req, nil
}

// authorize attaches the API key, if any.
func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
}

// do sends req and logs the round trip. The caller owns the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(req.Context(), "api request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, err
	}
	c.log.DebugContext(req.Context(), "api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// send performs a JSON round trip and decodes a successful response into out.
func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	resp, err := c.do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()
	return decodeResponse[T](resp)
}

// sendDelete performs a DELETE and reports failures with the raw status
// text only, prefixed with what was being deleted.
func (c *Client) sendDelete(ctx context.Context, path, what string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !success(resp.StatusCode) {
		text := statusText(resp)
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     text,
			Message:    "Failed to delete " + what + ": " + text,
		}
	}
	return nil
}
