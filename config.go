package deskmates

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config captures client settings sourced from DESKMATES_* environment
// variables. The zero-ish defaults mirror the pipeline defaults.
type Config struct {
	BaseURL      string `envconfig:"BASE_URL" default:"http://localhost:8000/api/v1"`
	TimeoutMs    int    `envconfig:"TIMEOUT_MS" default:"30000"`
	RetryCount   int    `envconfig:"RETRY_COUNT" default:"3"`
	RetryDelayMs int    `envconfig:"RETRY_DELAY_MS" default:"1000"`
	UserID       string `envconfig:"USER_ID" default:"anonymous"`
	EmployeeID   string `envconfig:"EMPLOYEE_ID" default:"default"`
	Debug        bool   `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads the environment, honoring a .env file in the working
// directory when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("deskmates", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options expands the config into client options.
func (cfg *Config) Options() []Option {
	opts := []Option{
		WithTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond),
		WithRetryCount(cfg.RetryCount),
		WithRetryDelay(time.Duration(cfg.RetryDelayMs) * time.Millisecond),
		WithSession(StaticSession{User: cfg.UserID, Employee: cfg.EmployeeID}),
	}
	if cfg.Debug {
		opts = append(opts, WithDebug())
	}
	return opts
}

// NewFromConfig constructs a client from a loaded config; extra options are
// applied on top and win over the config values.
func NewFromConfig(cfg *Config, extra ...Option) *Client {
	return New(cfg.BaseURL, append(cfg.Options(), extra...)...)
}
