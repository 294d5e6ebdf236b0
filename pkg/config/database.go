package config

import (
	"fmt"
	"strings"
	"time"
)

// DatabaseConfig selects a MongoDB connection string by environment tag.
// URL maps an environment name ("development", "production", ...) to a
// connection string; Environment picks the active entry.
type DatabaseConfig struct {
	Environment string            `koanf:"environment"`
	URL         map[string]string `koanf:"url"`
	Name        string            `koanf:"name"`
	Timeout     time.Duration     `koanf:"timeout"`
}

// ActiveURL returns the connection string for the configured environment.
func (c *DatabaseConfig) ActiveURL() string {
	return c.URL[c.Environment]
}

func (c *DatabaseConfig) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("database environment is not configured")
	}
	url := c.ActiveURL()
	if url == "" {
		return fmt.Errorf("database URL is not configured for environment %q", c.Environment)
	}
	if !isValidMongoURL(url) {
		return fmt.Errorf("database URL must start with 'mongodb://': %s", url)
	}
	if c.Name == "" {
		return fmt.Errorf("database name is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid database connect timeout: %v", c.Timeout)
	}
	return nil
}

// isValidMongoURL checks if the provided URL is a valid MongoDB URL
func isValidMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") ||
		strings.HasPrefix(url, "mongodb+srv://")
}
