// Package pagination provides page-windowed queries for the audit list
// endpoints: request parsing, bounds enforcement, and the page result
// envelope.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config bounds page sizes for list queries.
type Config struct {
	DefaultPageSize int `toml:"default_page_size" json:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size" json:"max_page_size"`
}

// ConfigEnv maps config fields to environment variable names for override
// injection.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize != 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize != 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 20
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	setInt := func(envVar string, target *int) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}

	setInt(env.DefaultPageSize, &c.DefaultPageSize)
	setInt(env.MaxPageSize, &c.MaxPageSize)
}

func (c *Config) validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default_page_size must be positive")
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be positive")
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size cannot exceed max_page_size")
	}
	return nil
}
