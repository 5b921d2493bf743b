package deskmates

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrTimeout marks an attempt that exceeded its allotted duration. It is
// carried as the cause of the 408 typed error so the retry loop can tell a
// local timeout apart from a server-issued 4xx.
var ErrTimeout = errors.New("deskmates: request timed out")

// APIError is the single error type that crosses the client boundary. It is
// used uniformly for transport failures (timeout, connection errors) and
// business failures (non-2xx responses).
type APIError struct {
	Message    string
	StatusCode int
	ErrCode    int
	Payload    map[string]any
	Cause      error
}

// Error implements error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.ErrCode != 0 {
		msg = fmt.Sprintf("%s [code %d]", msg, e.ErrCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return "deskmates: " + msg
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares status codes for errors.Is.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*APIError); ok {
		return e.StatusCode == targetErr.StatusCode
	}
	return false
}

// IsRetryable determines whether an error represents a transient failure that
// might succeed on retry. Timeouts, connection errors, decode failures and 5xx
// responses are retryable; a typed error carrying a 4xx (or 3xx) status is
// not, since repeating a malformed request cannot help. A typed error with no
// status at all falls through to retryable, matching pure network failures.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode <= 0 || apiErr.StatusCode >= 500
	}
	return true
}

// newStatusError builds an *APIError from a non-2xx response, decoding the
// body defensively: every field of the server's error contract is optional.
// The human message is looked up under "message", then "error_message", then
// "detail"; the machine code under "error_code". The full payload is retained.
func newStatusError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Message:    fmt.Sprintf("request failed with status %d", status),
		StatusCode: status,
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return apiErr
	}
	apiErr.Payload = payload

	for _, key := range []string{"message", "error_message", "detail"} {
		if msg, ok := payload[key].(string); ok && msg != "" {
			apiErr.Message = msg
			break
		}
	}
	if code, ok := payload["error_code"].(float64); ok {
		apiErr.ErrCode = int(code)
	}
	return apiErr
}

// wrapTransportError normalizes a failure into the typed shape. Errors that
// are already *APIError pass through untouched.
func wrapTransportError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{
		Message:    "network request failed",
		StatusCode: http.StatusInternalServerError,
		Cause:      err,
	}
}
