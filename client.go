package deskmates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskmates/deskmates-go/internal/backoff"
	"github.com/deskmates/deskmates-go/internal/casing"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	defaultRetryDelay = time.Second
)

// Client is the entry point to the Deskmates platform API. It owns the
// request pipeline (identity headers, case normalization, timeout, retry) and
// exposes the resource services built on top of it. It is safe for concurrent
// use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	retryCount int
	retryDelay time.Duration
	backoff    *backoff.Calculator
	session    Session
	logger     Logger
	debug      *DebugConfig
	metrics    *MetricsCollector
	sleep      func(time.Duration)

	validationError error

	Employees   *EmployeeService
	Marketplace *MarketplaceService
	Chat        *ChatService
	Knowledge   *KnowledgeService
	Health      *HealthService
}

// New constructs a Client for the given API base URL using the provided
// functional options. A best effort validation is performed; call IsValid /
// ValidationError for errors.
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    defaultTimeout,
		retryCount: defaultRetryCount,
		retryDelay: defaultRetryDelay,
		backoff:    backoff.Default(),
		session:    AnonymousSession{},
		debug:      DefaultDebugConfig(),
		sleep:      time.Sleep,
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	client.Employees = &EmployeeService{client: client}
	client.Marketplace = &MarketplaceService{client: client}
	client.Chat = &ChatService{client: client}
	client.Knowledge = &KnowledgeService{client: client}
	client.Health = &HealthService{client: client}

	return client
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// Get performs a GET against path and decodes the response body into out.
// Pass a nil out to discard the body.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Post performs a POST with the given body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

// Put performs a PUT with the given body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

// Patch performs a PATCH with the given body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts)
}

// Delete performs a DELETE against path.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

// do runs one logical request through the full pipeline. Every outcome is
// either a decoded body in out or an *APIError; nothing untyped escapes.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts []RequestOption) error {
	call := c.newCallOptions(opts)

	requestID := c.debug.requestID()
	if c.debugOn(c.debug.logRequests()) {
		c.logger.Debug("starting request",
			"requestID", requestID, "method", method, "path", path)
	}

	payload, err := encodeBody(body, call.rawCase)
	if err != nil {
		return &APIError{Message: "invalid request body", StatusCode: http.StatusBadRequest, Cause: err}
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(method, path)
	}
	start := time.Now()

	res, reqErr := c.withRetry(call, requestID, method, path, func() (*httpResult, error) {
		return withTimeout(ctx, call.timeout, func(attemptCtx context.Context) (*httpResult, error) {
			return c.attempt(attemptCtx, method, path, payload, call)
		})
	})

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordRequestEnd(method, path)
		c.metrics.RecordRequest(method, path, resultStatus(res, reqErr), duration)
	}

	if reqErr != nil {
		if c.metrics != nil {
			if errors.Is(reqErr, ErrTimeout) {
				c.metrics.RecordTimeout(method, path)
			}
			c.metrics.RecordError(errorKind(reqErr), method, path)
		}
		if c.debugOn(c.debug.logRequests()) {
			c.logger.Warn("request failed",
				"requestID", requestID, "method", method, "path", path, "error", reqErr.Error())
		}
		return reqErr
	}

	if c.debugOn(c.debug.logRequests()) {
		c.logger.Debug("request complete",
			"requestID", requestID, "method", method, "path", path,
			"status", res.status, "duration", duration)
	}

	if out == nil || res.status == http.StatusNoContent || res.value == nil {
		return nil
	}
	return decodeInto(res, out, call.rawCase)
}

// attempt performs exactly one network exchange and fully consumes the
// response. Raw (non-typed) errors returned here are transport-level and
// therefore retryable; typed errors carry the response status.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, call *callOptions) (*httpResult, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path, call.query), reader)
	if err != nil {
		return nil, &APIError{Message: "invalid request", StatusCode: http.StatusBadRequest, Cause: err}
	}
	c.setDefaultHeaders(req, "application/json")
	for key, value := range call.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent {
		return &httpResult{status: resp.StatusCode}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, data)
	}

	var value any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}
	}
	return &httpResult{status: resp.StatusCode, body: data, value: value}, nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

func (c *Client) setDefaultHeaders(req *http.Request, accept string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)
	req.Header.Set(HeaderUserID, c.session.UserID())
	req.Header.Set(HeaderEmployeeID, c.session.EmployeeID())
}

func (c *Client) debugOn(area bool) bool {
	return area && c.logger != nil
}

// encodeBody serializes a request body, rewriting structured payloads to the
// wire's snake_case convention unless raw is set. Scalars pass through as-is.
func encodeBody(body any, raw bool) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	if raw {
		return data, nil
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	switch value.(type) {
	case map[string]any, []any:
		return json.Marshal(casing.SnakeKeys(value))
	default:
		return data, nil
	}
}

// decodeInto delivers the response body to the caller's target, converting
// keys to the client-side camelCase convention unless raw is set.
func decodeInto(res *httpResult, out any, raw bool) error {
	if raw {
		if err := json.Unmarshal(res.body, out); err != nil {
			return &APIError{Message: "failed to decode response", StatusCode: http.StatusInternalServerError, Cause: err}
		}
		return nil
	}

	value := casing.CamelKeys(res.value)
	switch target := out.(type) {
	case *any:
		*target = value
		return nil
	case *map[string]any:
		if m, ok := value.(map[string]any); ok {
			*target = m
			return nil
		}
	}

	data, err := json.Marshal(value)
	if err == nil {
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return &APIError{Message: "failed to decode response", StatusCode: http.StatusInternalServerError, Cause: err}
	}
	return nil
}

func resultStatus(res *httpResult, err error) int {
	if res != nil {
		return res.status
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func errorKind(err error) string {
	if errors.Is(err, ErrTimeout) {
		return "timeout"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Cause != nil:
			return "network"
		case apiErr.StatusCode >= 500:
			return "server"
		case apiErr.StatusCode >= 400:
			return "client"
		}
	}
	return "network"
}
