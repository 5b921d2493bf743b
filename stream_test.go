package deskmates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestStreamDeliversChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q, want text/event-stream", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: Hello\n")
		fmt.Fprint(w, "data:  there\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer server.Close()

	client := testClient(server)

	var chunks []string
	err := client.Stream(context.Background(), "/chat/stream", map[string]any{"message": "hi"}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("Stream() returned error: %v", err)
	}

	want := []string{"Hello", " there"}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("chunks = %q, want %q", chunks, want)
	}
}

func TestStreamIgnoresNonDataLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ": keep-alive comment\n")
		fmt.Fprint(w, "event: message\n")
		fmt.Fprint(w, "\n")
		fmt.Fprint(w, "data: payload\n")
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer server.Close()

	client := testClient(server)

	var chunks []string
	err := client.Stream(context.Background(), "/chat/stream", nil, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("Stream() returned error: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "payload" {
		t.Errorf("chunks = %q, want [payload]", chunks)
	}
}

func TestStreamEndsOnExhaustionWithoutSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: first\n")
		fmt.Fprint(w, "data: second\n")
	}))
	defer server.Close()

	client := testClient(server)

	var chunks []string
	err := client.Stream(context.Background(), "/chat/stream", nil, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	if err != nil {
		t.Fatalf("Stream() returned error: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("chunks = %q, want 2 entries", chunks)
	}
}

func TestStreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"detail":"model overloaded"}`)
	}))
	defer server.Close()

	client := testClient(server)

	err := client.Stream(context.Background(), "/chat/stream", nil, func(string) {
		t.Error("handler should not run for a failed open")
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected a typed error, got %T", err)
	}
	if apiErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
	}
	if apiErr.Message != "model overloaded" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "model overloaded")
	}
}

func TestStreamSendsSnakeCaseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if _, ok := payload["employee_id"]; !ok {
			t.Errorf("stream body should use snake_case, got %v", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer server.Close()

	client := testClient(server)
	err := client.Stream(context.Background(), "/chat/stream", map[string]any{"employeeId": "emp-1"}, func(string) {})
	if err != nil {
		t.Fatalf("Stream() returned error: %v", err)
	}
}
