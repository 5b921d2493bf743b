package deskmates

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskmates/deskmates-go/internal/backoff"
)

// Option represents a client configuration option.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the default per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryCount sets the default number of retries after the first attempt.
func WithRetryCount(n int) Option {
	return func(c *Client) {
		c.retryCount = n
	}
}

// WithRetryDelay sets the default base delay of the backoff schedule.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithBackoffStrategy replaces the delay calculation strategy.
func WithBackoffStrategy(strategy backoff.Strategy) Option {
	return func(c *Client) {
		c.backoff = backoff.NewCalculator(strategy)
	}
}

// WithSession sets the session the identity headers are read from.
func WithSession(session Session) Option {
	return func(c *Client) {
		c.session = session
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables debug logging with the default configuration, wiring a
// logrus-backed logger if none was provided.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		if c.logger == nil {
			c.logger = NewLogrusLogger(nil)
		}
	}
}

// WithDebugConfig sets a custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// WithMetrics enables Prometheus metrics collection on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// ValidateConfiguration validates the client configuration and returns a
// typed error describing every problem found.
func (c *Client) ValidateConfiguration() error {
	var problems []string

	if c.baseURL == "" {
		problems = append(problems, "baseURL must not be empty")
	} else if u, err := url.Parse(c.baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "baseURL must be an absolute URL")
	}
	if c.timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.retryCount < 0 {
		problems = append(problems, "retryCount must be non-negative")
	}
	if c.retryDelay <= 0 {
		problems = append(problems, "retryDelay must be positive")
	}
	if c.httpClient == nil {
		problems = append(problems, "httpClient must not be nil")
	}
	if c.session == nil {
		problems = append(problems, "session must not be nil")
	}

	if len(problems) > 0 {
		return &APIError{
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %s", strings.Join(problems, "; ")),
		}
	}
	return nil
}
