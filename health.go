package deskmates

import "context"

// HealthStatus is the platform's liveness report. Health endpoints return
// their payload bare, without the success envelope.
type HealthStatus struct {
	Status      string `json:"status"`
	Service     string `json:"service,omitempty"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// DetailedHealth adds per-subsystem diagnostics to the basic report.
type DetailedHealth struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp,omitempty"`
	App       map[string]any `json:"app,omitempty"`
	System    map[string]any `json:"system,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
	Services  map[string]any `json:"services,omitempty"`
}

// HealthService reports platform liveness.
type HealthService struct {
	client *Client
}

// Check performs the basic health check.
func (s *HealthService) Check(ctx context.Context, opts ...RequestOption) (*HealthStatus, error) {
	var status HealthStatus
	if err := s.client.Get(ctx, "/health/", &status, opts...); err != nil {
		return nil, err
	}
	return &status, nil
}

// Detailed performs the per-subsystem health check.
func (s *HealthService) Detailed(ctx context.Context, opts ...RequestOption) (*DetailedHealth, error) {
	var status DetailedHealth
	if err := s.client.Get(ctx, "/health/detailed", &status, opts...); err != nil {
		return nil, err
	}
	return &status, nil
}
