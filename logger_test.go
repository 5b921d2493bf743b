package deskmates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

func TestLogrusLoggerFields(t *testing.T) {
	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	logger := NewLogrusLogger(base)

	logger.Debug("starting request", "method", "GET", "path", "/things")

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Message != "starting request" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Data["method"] != "GET" || entry.Data["path"] != "/things" {
		t.Errorf("fields = %v", entry.Data)
	}
}

func TestLogrusLoggerOddPairs(t *testing.T) {
	base, hook := logrustest.NewNullLogger()
	logger := NewLogrusLogger(base)

	// A dangling key must not panic; it is simply dropped.
	logger.Error("boom", "method")

	if len(hook.AllEntries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(hook.AllEntries()))
	}
	if len(hook.LastEntry().Data) != 0 {
		t.Errorf("fields = %v, want none", hook.LastEntry().Data)
	}
}

func TestDebugLoggingEmitsRequestLifecycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"success":true}`)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	}))
	defer server.Close()

	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	client := testClient(server,
		WithLogger(NewLogrusLogger(base)),
		WithDebug(),
		WithRequestIDGenerator(func() string { return "req-fixed" }),
	)

	if err := client.Get(context.Background(), "/things", nil); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) < 2 {
		t.Fatalf("entries = %d, want at least start and complete", len(entries))
	}
	if entries[0].Message != "starting request" {
		t.Errorf("first entry = %q", entries[0].Message)
	}
	for _, entry := range entries {
		if entry.Data["requestID"] != "req-fixed" {
			t.Errorf("entry %q requestID = %v, want req-fixed", entry.Message, entry.Data["requestID"])
		}
	}
}

func TestSessionFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		session      Session
		wantUser     string
		wantEmployee string
	}{
		{"anonymous", AnonymousSession{}, "anonymous", "default"},
		{"static", StaticSession{User: "u-1", Employee: "emp-1"}, "u-1", "emp-1"},
		{"static empty falls back", StaticSession{}, "anonymous", "default"},
		{"static partial", StaticSession{User: "u-1"}, "u-1", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.UserID(); got != tt.wantUser {
				t.Errorf("UserID() = %q, want %q", got, tt.wantUser)
			}
			if got := tt.session.EmployeeID(); got != tt.wantEmployee {
				t.Errorf("EmployeeID() = %q, want %q", got, tt.wantEmployee)
			}
		})
	}
}
