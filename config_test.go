package deskmates

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("BaseURL = %q, want the local default", cfg.BaseURL)
	}
	if cfg.TimeoutMs != 30000 || cfg.RetryCount != 3 || cfg.RetryDelayMs != 1000 {
		t.Errorf("pipeline defaults = %d/%d/%d, want 30000/3/1000",
			cfg.TimeoutMs, cfg.RetryCount, cfg.RetryDelayMs)
	}
	if cfg.UserID != "anonymous" || cfg.EmployeeID != "default" {
		t.Errorf("identity defaults = %q/%q, want anonymous/default", cfg.UserID, cfg.EmployeeID)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("DESKMATES_BASE_URL", "https://api.deskmates.example/api/v1")
	t.Setenv("DESKMATES_TIMEOUT_MS", "5000")
	t.Setenv("DESKMATES_RETRY_COUNT", "1")
	t.Setenv("DESKMATES_RETRY_DELAY_MS", "250")
	t.Setenv("DESKMATES_USER_ID", "u-99")
	t.Setenv("DESKMATES_DEBUG", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.BaseURL != "https://api.deskmates.example/api/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TimeoutMs != 5000 || cfg.RetryCount != 1 || cfg.RetryDelayMs != 250 {
		t.Errorf("pipeline values = %d/%d/%d, want 5000/1/250",
			cfg.TimeoutMs, cfg.RetryCount, cfg.RetryDelayMs)
	}
	if cfg.UserID != "u-99" {
		t.Errorf("UserID = %q, want u-99", cfg.UserID)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &Config{
		BaseURL:      "https://api.deskmates.example/api/v1",
		TimeoutMs:    5000,
		RetryCount:   1,
		RetryDelayMs: 250,
		UserID:       "u-99",
		EmployeeID:   "emp-7",
	}

	client := NewFromConfig(cfg)
	if !client.IsValid() {
		t.Fatalf("expected a valid client, got %v", client.ValidationError())
	}
	if client.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.timeout)
	}
	if client.retryCount != 1 {
		t.Errorf("retryCount = %d, want 1", client.retryCount)
	}
	if client.session.UserID() != "u-99" || client.session.EmployeeID() != "emp-7" {
		t.Errorf("session = %s/%s, want u-99/emp-7",
			client.session.UserID(), client.session.EmployeeID())
	}
}

func TestNewFromConfigExtraOptionsWin(t *testing.T) {
	cfg := &Config{BaseURL: "https://api.deskmates.example", TimeoutMs: 5000, RetryCount: 1, RetryDelayMs: 250}

	client := NewFromConfig(cfg, WithRetryCount(9))
	if client.retryCount != 9 {
		t.Errorf("retryCount = %d, extra options should win", client.retryCount)
	}
}
