// Package api implements the HTTP transport of the project API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/project"
)

// DefaultUserAgent is the user agent sent when none is configured.
const DefaultUserAgent = "pview"

// maxErrorBody limits how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is a project API client.
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
}

var _ project.Getter = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The client's transport is
// instrumented with request metrics.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		hc := *c
		cl.http = &hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a new Client for the configured API.
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	u, err := url.Parse(cfg.API.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidAPIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidAPIURL, cfg.API.URL)
	}

	c := &Client{
		baseURL:   u,
		token:     cfg.API.Token,
		userAgent: DefaultUserAgent,
		http: &http.Client{
			Timeout: time.Duration(cfg.API.Timeout) * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.Transport = instrument(c.http.Transport)

	return c, nil
}

// URL returns the URL of the given endpoint.
func (c *Client) URL(endpoint string, params any) (*url.URL, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + endpoint
	u.RawPath = ""
	u.RawQuery = ""
	if !isNil(params) {
		v, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("encode params: %w", err)
		}
		u.RawQuery = v.Encode()
	}
	return &u, nil
}

// Get requests the endpoint and decodes the JSON response into v.
func (c *Client) Get(ctx context.Context, endpoint string, params any, v any) error {
	logger := log.FromContext(ctx).WithPrefix("api")

	u, err := c.URL(endpoint, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", reqID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	logger.Debug("request", "url", u, "id", reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	defer resp.Body.Close() // nolint: errcheck
	logger.Debug("response", "id", reqID, "status", resp.StatusCode, "time", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}

	return nil
}

func newError(endpoint string, resp *http.Response) error {
	e := &Error{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return e
	}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		e.Message = er.Message
		e.Variant = er.Variant
	} else if msg := strings.TrimSpace(string(body)); msg != "" {
		e.Message = msg
	}

	return e
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
