// Package config loads TUI configuration from YAML with sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all TUI configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
}

// ServerConfig contains server connection settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// UIConfig for UI preferences
type UIConfig struct {
	RefreshRate int `yaml:"refresh_rate_ms"`
	PageSize    int `yaml:"page_size"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		UI: UIConfig{
			RefreshRate: 1000,
			PageSize:    10,
		},
	}
}

// Load loads configuration from file, falling back to defaults
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Default(), nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for config in standard locations
func findConfigFile() string {
	locations := []string{
		"./reelhub-tui.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "reelhub", "tui.yaml"),
		filepath.Join(os.Getenv("HOME"), ".reelhub-tui.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// GetHTTPBaseURL returns the computed HTTP base URL. Public hosts get HTTPS.
func (c *Config) GetHTTPBaseURL() string {
	scheme := "http"
	if c.Server.Host != "localhost" && c.Server.Host != "127.0.0.1" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d/api", scheme, c.Server.Host, c.Server.Port)
}
