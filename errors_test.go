package deskmates

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAPIErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "message and status",
			err:  &APIError{Message: "not found", StatusCode: 404},
			want: "deskmates: not found (status 404)",
		},
		{
			name: "with machine code",
			err:  &APIError{Message: "quota exceeded", StatusCode: 403, ErrCode: 1042},
			want: "deskmates: quota exceeded (status 403) [code 1042]",
		},
		{
			name: "with cause",
			err:  &APIError{Message: "network request failed", StatusCode: 500, Cause: errors.New("dial refused")},
			want: "deskmates: network request failed (status 500): dial refused",
		},
		{
			name: "no status",
			err:  &APIError{Message: "configuration validation failed"},
			want: "deskmates: configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorNil(t *testing.T) {
	var err *APIError
	if got := err.Error(); got != "<nil>" {
		t.Errorf("nil Error() = %q, want <nil>", got)
	}
	if err.Unwrap() != nil {
		t.Error("nil Unwrap() should be nil")
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &APIError{Message: "network request failed", StatusCode: 500, Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestAPIErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{Message: "gone", StatusCode: 404})
	if !errors.Is(err, &APIError{StatusCode: 404}) {
		t.Error("errors.Is should match on status code")
	}
	if errors.Is(err, &APIError{StatusCode: 500}) {
		t.Error("errors.Is should not match a different status code")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", &APIError{Message: "request timed out", StatusCode: 408, Cause: ErrTimeout}, true},
		{"server error", &APIError{StatusCode: 500}, true},
		{"bad gateway", &APIError{StatusCode: 502}, true},
		{"client error", &APIError{StatusCode: 400}, false},
		{"not found", &APIError{StatusCode: 404}, false},
		{"redirect", &APIError{StatusCode: 301}, false},
		{"statusless typed error", &APIError{Message: "boom"}, true},
		{"raw transport error", errors.New("dial tcp: connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    int
	}{
		{
			name:        "message field",
			status:      400,
			body:        `{"message":"not found"}`,
			wantMessage: "not found",
		},
		{
			name:        "error_message field",
			status:      422,
			body:        `{"success":false,"error_code":1001,"error_message":"invalid employee"}`,
			wantMessage: "invalid employee",
			wantCode:    1001,
		},
		{
			name:        "detail field",
			status:      404,
			body:        `{"detail":"知识库不存在: kb-9"}`,
			wantMessage: "知识库不存在: kb-9",
		},
		{
			name:        "empty body falls back",
			status:      502,
			body:        ``,
			wantMessage: "request failed with status 502",
		},
		{
			name:        "non-JSON body falls back",
			status:      500,
			body:        `<html>Internal Server Error</html>`,
			wantMessage: "request failed with status 500",
		},
		{
			name:        "message wins over detail",
			status:      400,
			body:        `{"message":"primary","detail":"secondary"}`,
			wantMessage: "primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newStatusError(tt.status, []byte(tt.body))
			if err.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.status)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.ErrCode != tt.wantCode {
				t.Errorf("ErrCode = %d, want %d", err.ErrCode, tt.wantCode)
			}
		})
	}
}

func TestNewStatusErrorKeepsPayload(t *testing.T) {
	err := newStatusError(409, []byte(`{"error_message":"already hired","hint":"use trial","retry_after":30}`))
	if err.Payload == nil {
		t.Fatal("Payload should be retained")
	}
	if err.Payload["hint"] != "use trial" {
		t.Errorf("Payload[hint] = %v, want %q", err.Payload["hint"], "use trial")
	}
}

func TestWrapTransportError(t *testing.T) {
	typed := &APIError{Message: "not found", StatusCode: 404}
	if got := wrapTransportError(typed); got != typed {
		t.Error("typed errors should pass through untouched")
	}

	raw := errors.New("connection reset by peer")
	wrapped := wrapTransportError(raw)
	if wrapped.Message != "network request failed" {
		t.Errorf("Message = %q, want %q", wrapped.Message, "network request failed")
	}
	if wrapped.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", wrapped.StatusCode)
	}
	if !errors.Is(wrapped, raw) {
		t.Error("the raw error should remain reachable via Unwrap")
	}
	if !strings.Contains(wrapped.Error(), "connection reset") {
		t.Errorf("Error() should mention the cause, got %q", wrapped.Error())
	}
}
