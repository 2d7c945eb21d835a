package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token attached to each request.
type TokenSource interface {
	Token() string
}

// Client performs JSON calls against one remote service and classifies every
// failure into a Category.
type Client struct {
	service string
	baseURL string
	client  HTTPDoer
	tokens  TokenSource
	timeout time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.client = doer
	}
}

// WithTokenSource attaches "Authorization: Bearer <token>" to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the service rooted at baseURL.
func New(service, baseURL string, opts ...Option) *Client {
	c := &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Service returns the name used in error messages.
func (c *Client) Service() string {
	return c.service
}

// errorBody is the error payload shape used by both remote services.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do sends in (when non-nil) as JSON to method path and decodes a successful
// response into out (when non-nil). An empty success body leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return NewError(CategoryInternal, c.service, "failed to marshal request", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return NewError(CategoryInternal, c.service, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return NewError(CategoryTimeout, c.service, "request timeout", err)
		}
		return NewError(CategoryOutage, c.service, "failed to execute request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return NewError(CategoryTimeout, c.service, "response timeout", err)
		}
		return NewError(CategoryOutage, c.service, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return NewError(CategoryContractMismatch, c.service, "failed to parse response", err)
	}
	return nil
}

func (c *Client) statusError(status int, raw []byte) *Error {
	msg := serverMessage(raw)
	var e *Error
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		e = NewError(CategoryBadData, c.service, orDefault(msg, "bad request"), nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		e = NewError(CategoryAuthentication, c.service, fmt.Sprintf("authentication failed: %d", status), nil)
	case http.StatusNotFound:
		e = NewError(CategoryNotFound, c.service, orDefault(msg, "record not found"), nil)
	case http.StatusConflict:
		e = NewError(CategoryConflict, c.service, orDefault(msg, "concurrent modification"), nil)
	case http.StatusTooManyRequests:
		e = NewError(CategoryRateLimited, c.service, "rate limit exceeded", nil)
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		e = NewError(CategoryTimeout, c.service, fmt.Sprintf("upstream timeout: %d", status), nil)
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		e = NewError(CategoryOutage, c.service, fmt.Sprintf("service unavailable: %d", status), nil)
	default:
		if status >= http.StatusInternalServerError && msg == "" {
			// A 5xx without a structured body is a crash page, not an answer.
			e = NewError(CategoryOutage, c.service, fmt.Sprintf("server error: %d", status), nil)
			break
		}
		e = NewError(CategoryInternal, c.service, orDefault(msg, fmt.Sprintf("unexpected status code: %d", status)), nil)
	}
	e.Status = status
	return e
}

func serverMessage(raw []byte) string {
	var eb errorBody
	if json.Unmarshal(raw, &eb) != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
