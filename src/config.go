package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bfhl/src/bfhl"
)

// Config holds bfhl client settings.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	Theme   string `yaml:"theme"`

	// AllowConcurrentSubmits lets a new submit start while one is in flight.
	// The last response to arrive wins.
	AllowConcurrentSubmits bool `yaml:"allow_concurrent_submits"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL: bfhl.DefaultBaseURL,
		Timeout: bfhl.DefaultTimeout.String(),
		Theme:   "default",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// configDir returns ~/.bfhl.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".bfhl"), nil
}

// DefaultConfigPath returns ~/.bfhl/config.yaml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if url := strings.TrimSpace(os.Getenv("BFHL_API_URL")); url != "" {
		c.BaseURL = url
	}
	if theme := strings.TrimSpace(os.Getenv("BFHL_THEME")); theme != "" {
		c.Theme = theme
	}
	if file := strings.TrimSpace(os.Getenv("BFHL_LOG_FILE")); file != "" {
		c.Logging.File = file
	}
	if timeout := strings.TrimSpace(os.Getenv("BFHL_TIMEOUT")); timeout != "" {
		c.Timeout = timeout
	}
}

// GetTimeout returns the request timeout. Zero means none.
func (c *Config) GetTimeout() time.Duration {
	d, err := parseTimeout(c.Timeout)
	if err != nil {
		return bfhl.DefaultTimeout
	}
	return d
}

func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return bfhl.DefaultTimeout, nil
	}
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// Validate checks the values a client cannot start without.
func (c *Config) Validate() error {
	if _, err := bfhl.EndpointURL(c.BaseURL); err != nil {
		return err
	}
	if _, err := parseTimeout(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
