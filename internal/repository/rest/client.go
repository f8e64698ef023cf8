package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// Default timeout for a single request.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// TokenSource supplies bearer tokens. Refresh is called at most once per request,
// after the backend rejected the current token with a 401.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Client issues JSON requests against the backend base URL.
// It holds no state besides the base URL, the HTTP client and an optional token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger attaches a logger. Requests are logged at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for baseURL, e.g. "https://api.example.com/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidURL, baseURL)
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithTokens returns a copy of c that attaches bearer tokens from ts.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint composes {base}/{segments...}.
func (c *Client) endpoint(segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	raw := c.baseURL + "/" + strings.Join(escaped, "/")
	if _, err := url.ParseRequestURI(raw); err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrInvalidURL, err)
	}
	return raw, nil
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// roundTrip sends one request and reads the whole body. It replays the request once
// after a token refresh when the backend answers 401 and a token source is set.
func (c *Client) roundTrip(ctx context.Context, method string, body any, segments ...string) (*response, error) {
	target, err := c.endpoint(segments...)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, target, payload, "")
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusUnauthorized || c.tokens == nil {
		return resp, nil
	}

	token, err := c.tokens.Refresh(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("url", target).Msg("token refresh failed")
		return resp, nil
	}
	return c.send(ctx, method, target, payload, token)
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte, token string) (*response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrInvalidURL, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token == "" && c.tokens != nil {
		if token, err = c.tokens.AccessToken(ctx); err != nil {
			c.log.Debug().Err(err).Msg("no access token available")
			token = ""
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("url", target).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("%w: %w", repository.ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", repository.ErrInvalidResponse, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	return &response{status: resp.StatusCode, body: data}, nil
}

// do performs a request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method string, body, out any, segments ...string) error {
	resp, err := c.roundTrip(ctx, method, body, segments...)
	if err != nil {
		return err
	}

	if method == http.MethodDelete {
		if resp.status == http.StatusNoContent {
			return nil
		}
		return statusError(resp)
	}

	switch {
	case resp.status == http.StatusNoContent:
		if out != nil {
			return repository.ErrNoContent
		}
		return nil
	case resp.status >= 200 && resp.status < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return &repository.DecodeError{Err: err}
		}
		return nil
	}
	return statusError(resp)
}

// statusError maps a non-success status onto the error taxonomy.
func statusError(resp *response) error {
	switch resp.status {
	case http.StatusBadRequest:
		return repository.ErrBadRequest
	case http.StatusNotFound:
		return repository.ErrNotFound
	}
	return &repository.ServerError{Code: resp.status, Body: string(resp.body)}
}
