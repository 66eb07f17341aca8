package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvDownstreamBaseURL  = "INTAKE_DOWNSTREAM_BASE_URL"
	EnvDownstreamTimeout  = "INTAKE_DOWNSTREAM_TIMEOUT"
	EnvDownstreamSimulate = "INTAKE_DOWNSTREAM_SIMULATE"
)

// DownstreamConfig holds the connection settings for the follow-up action
// endpoints (CRM, risk, compliance). When Simulate is true the service
// mounts its own simulated endpoints and, absent an explicit base URL,
// points the client at them over loopback.
type DownstreamConfig struct {
	BaseURL  string `toml:"base_url"`
	Timeout  string `toml:"timeout"`
	Simulate *bool  `toml:"simulate"`
}

// Simulated reports whether the in-repo downstream endpoints are mounted.
func (c *DownstreamConfig) Simulated() bool {
	return c.Simulate == nil || *c.Simulate
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *DownstreamConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
// The server config supplies the loopback port for the default base URL.
func (c *DownstreamConfig) Finalize(server *ServerConfig) error {
	c.loadDefaults(server)
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *DownstreamConfig) Merge(overlay *DownstreamConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Simulate != nil {
		c.Simulate = overlay.Simulate
	}
}

func (c *DownstreamConfig) loadDefaults(server *ServerConfig) {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("http://127.0.0.1:%d/downstream", server.Port)
	}
}

func (c *DownstreamConfig) loadEnv() {
	if v := os.Getenv(EnvDownstreamBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvDownstreamTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvDownstreamSimulate); v != "" {
		if simulate, err := strconv.ParseBool(v); err == nil {
			c.Simulate = &simulate
		}
	}
}

func (c *DownstreamConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
