package deskmates

import "github.com/google/uuid"

// DebugConfig controls the diagnostic logging emitted through the Logger.
// Individual areas can be silenced without turning debugging off entirely.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogRetries   bool
	LogStream    bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a disabled config with all areas selected and a
// short uuid-based request ID generator.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogRetries:   true,
		LogStream:    true,
		RequestIDGen: defaultRequestID,
	}
}

func defaultRequestID() string {
	return uuid.NewString()[:8]
}

// The area accessors are nil-safe: a nil config reads as debugging off, so
// the pipeline never has to guard the pointer at each log site.

func (d *DebugConfig) logRequests() bool {
	return d != nil && d.Enabled && d.LogRequests
}

func (d *DebugConfig) logRetries() bool {
	return d != nil && d.Enabled && d.LogRetries
}

func (d *DebugConfig) logStream() bool {
	return d != nil && d.Enabled && d.LogStream
}

func (d *DebugConfig) requestID() string {
	if d == nil || !d.Enabled || d.RequestIDGen == nil {
		return ""
	}
	return d.RequestIDGen()
}
