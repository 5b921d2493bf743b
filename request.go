package deskmates

import (
	"net/url"
	"time"
)

// callOptions carries the per-call knobs of one logical request. It lives
// only for the duration of that request.
type callOptions struct {
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	headers    map[string]string
	query      url.Values
	rawCase    bool
}

// RequestOption adjusts a single call without touching client defaults.
type RequestOption func(*callOptions)

func (c *Client) newCallOptions(opts []RequestOption) *callOptions {
	call := &callOptions{
		timeout:    c.timeout,
		retries:    c.retryCount,
		retryDelay: c.retryDelay,
	}
	for _, opt := range opts {
		opt(call)
	}
	return call
}

// WithHeader adds or overrides a header for this call. Caller-supplied
// headers win over the pipeline defaults, identity headers included.
func WithHeader(key, value string) RequestOption {
	return func(call *callOptions) {
		if call.headers == nil {
			call.headers = map[string]string{}
		}
		call.headers[key] = value
	}
}

// WithQuery appends a query string parameter to the request URL.
func WithQuery(key, value string) RequestOption {
	return func(call *callOptions) {
		if call.query == nil {
			call.query = url.Values{}
		}
		call.query.Set(key, value)
	}
}

// WithCallTimeout overrides the per-attempt timeout for this call.
// Non-positive values are ignored.
func WithCallTimeout(d time.Duration) RequestOption {
	return func(call *callOptions) {
		if d > 0 {
			call.timeout = d
		}
	}
}

// WithCallRetries overrides the retry count for this call.
func WithCallRetries(n int) RequestOption {
	return func(call *callOptions) {
		if n >= 0 {
			call.retries = n
		}
	}
}

// WithCallRetryDelay overrides the base backoff delay for this call.
// Non-positive values are ignored.
func WithCallRetryDelay(d time.Duration) RequestOption {
	return func(call *callOptions) {
		if d > 0 {
			call.retryDelay = d
		}
	}
}

// WithoutCaseTransform sends and receives payloads exactly as-is, skipping
// the snake_case/camelCase normalization in both directions.
func WithoutCaseTransform() RequestOption {
	return func(call *callOptions) {
		call.rawCase = true
	}
}
