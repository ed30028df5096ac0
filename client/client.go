package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/apictl/descriptor"
	"github.com/s0up4200/apictl/models"
	"github.com/s0up4200/apictl/response"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "apictl"
	apiKeyHeader     = "api_key"
)

// Client performs REST calls and deserializes the responses
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	tempDir    string
	registry   *models.Registry
	parser     *descriptor.Parser
	logger     zerolog.Logger
}

// Request describes a single API call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is JSON encoded when non-nil
	Body any
	// ReturnType is the descriptor the response is deserialized against.
	// Empty skips deserialization.
	ReturnType string
}

// New creates a client for the API rooted at baseURL. apiKey may be empty
// for APIs without key authentication.
func New(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrInvalidConfig, u.Scheme)
	}

	c := &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		tempDir:   os.TempDir(),
		registry:  models.NewRegistry(),
		parser:    descriptor.NewParser(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Registry returns the model registry shared by every response
func (c *Client) Registry() *models.Registry {
	return c.registry
}

// Call executes req and deserializes the body against req.ReturnType. The
// wrapped response is returned alongside the value for header and status
// access. Non-2xx statuses fail with *response.APIError.
func (c *Client) Call(ctx context.Context, req Request) (any, *response.Response, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	raw, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	c.logger.Debug().
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.Redacted()).
		Int("status", raw.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API request completed")

	resp, err := response.New(raw,
		response.WithRegistry(c.registry),
		response.WithParser(c.parser),
		response.WithTempDir(c.tempDir),
		response.WithLogger(c.logger),
	)
	if err != nil {
		return nil, nil, err
	}

	if req.ReturnType == "" {
		return nil, resp, nil
	}

	value, err := resp.Deserialize(req.ReturnType)
	if err != nil {
		return nil, resp, fmt.Errorf("failed to deserialize %s %s as %s: %w", httpReq.Method, req.Path, req.ReturnType, err)
	}
	return value, resp, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.ReturnType == "File" {
		httpReq.Header.Set("Accept", "*/*")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set(apiKeyHeader, c.apiKey)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	return httpReq, nil
}
