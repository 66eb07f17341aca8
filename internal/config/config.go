package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/intakehq/intake/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvIntakeEnv             = "INTAKE_ENV"
	EnvIntakeShutdownTimeout = "INTAKE_SHUTDOWN_TIMEOUT"
	EnvIntakeVersion         = "INTAKE_VERSION"
	EnvIntakeOracleEnabled   = "INTAKE_ORACLE_ENABLED"
)

var databaseEnv = &database.Env{
	Host:            "INTAKE_DB_HOST",
	Port:            "INTAKE_DB_PORT",
	Name:            "INTAKE_DB_NAME",
	User:            "INTAKE_DB_USER",
	Password:        "INTAKE_DB_PASSWORD",
	SSLMode:         "INTAKE_DB_SSL_MODE",
	MaxOpenConns:    "INTAKE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "INTAKE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "INTAKE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "INTAKE_DB_CONN_TIMEOUT",
}

// Config is the root configuration for the intake service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Downstream      DownstreamConfig     `toml:"downstream"`
	OracleEnabled   bool                 `toml:"oracle_enabled"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the INTAKE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvIntakeEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.OracleEnabled {
		c.OracleEnabled = true
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Downstream.Merge(&overlay.Downstream)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent, c.OracleEnabled); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Downstream.Finalize(&c.Server); err != nil {
		return fmt.Errorf("downstream: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvIntakeShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvIntakeVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvIntakeOracleEnabled); v != "" {
		c.OracleEnabled = v == "true" || v == "1"
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvIntakeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
