// Package client implements a small typed HTTP client that executes one
// request described by {method, urlPath, params} and returns a discriminated
// Envelope of {data} or {error}. It never interprets response payloads beyond
// the success/error split; decoding into endpoint types is the caller's job.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Client executes typed HTTP requests against a single base URL.
type Client struct {
	base      *url.URL
	http      *retryablehttp.Client
	userAgent string
	debug     bool
	logger    zerolog.Logger
}

// Option customizes a Client beyond what Config covers.
type Option func(*Client)

// WithLogger sets the logger used for debug request/response logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the inner *http.Client used by the retrying
// transport. Useful for tests and custom TLS setups.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http.HTTPClient = h }
}

// New creates a Client from the provided configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.HTTPClient.Timeout = cfg.HTTPTimeout
	// retryablehttp's own logger is too chatty; we log through zerolog instead.
	rc.Logger = nil

	c := &Client{
		base:      base,
		http:      rc,
		userAgent: cfg.UserAgent,
		debug:     cfg.Debug,
		logger:    zerolog.Nop(),
	}

	for _, o := range opts {
		o(c)
	}

	return c, nil
}

// Execute performs one HTTP request and returns the discriminated result.
// A non-nil error is returned only for request-construction and transport
// failures; API-level failures (non-2xx) land in the envelope's Err branch.
func (c *Client) Execute(ctx context.Context, method, urlPath string, opts RequestOptions) (*Envelope, error) {
	target, err := c.buildURL(urlPath, opts.Params)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if opts.Body != nil {
		payload, err = json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncodeRequestBody, err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())

	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, values := range opts.Params.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", target).
			Msg("executing request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, urlPath, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Int("bytes", len(body)).
			Msg("request complete")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Envelope{Err: parseAPIError(resp.StatusCode, body)}, nil
	}

	return &Envelope{Data: body}, nil
}

// buildURL expands path template placeholders and appends encoded query
// parameters. Placeholders use the "{name}" form; every placeholder must have
// a matching Params.Path entry and vice versa.
func (c *Client) buildURL(urlPath string, params Params) (string, error) {
	expanded, err := expandPath(urlPath, params.Path)
	if err != nil {
		return "", err
	}

	u := *c.base

	// expanded contains percent-escaped segments; keep the escaped form in
	// RawPath so String() does not re-encode it.
	escaped := strings.TrimRight(u.EscapedPath(), "/") + expanded

	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("building request path: %w", err)
	}

	u.Path = decoded
	u.RawPath = escaped

	if len(params.Query) > 0 {
		u.RawQuery = params.Query.Encode()
	}

	return u.String(), nil
}

func expandPath(urlPath string, values map[string]string) (string, error) {
	if !strings.Contains(urlPath, "{") {
		if len(values) > 0 {
			return "", fmt.Errorf("%w: path %q has no placeholders", ErrUnknownPathParam, urlPath)
		}

		return urlPath, nil
	}

	used := make(map[string]bool, len(values))

	var b strings.Builder

	rest := urlPath
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)

			break
		}

		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrMissingPathParam, urlPath)
		}

		name := rest[open+1 : open+closing]

		value, ok := values[name]
		if !ok {
			return "", fmt.Errorf("%w: %q in %q", ErrMissingPathParam, name, urlPath)
		}

		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		used[name] = true
		rest = rest[open+closing+1:]
	}

	for name := range values {
		if !used[name] {
			return "", fmt.Errorf("%w: %q not present in %q", ErrUnknownPathParam, name, urlPath)
		}
	}

	return b.String(), nil
}
