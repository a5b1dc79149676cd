// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration, loaded from YAML with
// environment variable substitution.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Rendering  RenderingConfig  `yaml:"rendering"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Compliance ComplianceConfig `yaml:"compliance"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RenderingConfig configures the remote rendering service used by the
// rendered-DOM strategy. An empty token disables the strategy; the
// pipeline then starts at the static fetch.
type RenderingConfig struct {
	ServiceURL   string        `yaml:"service_url"`
	Token        string        `yaml:"token"`
	Timeout      time.Duration `yaml:"timeout"`
	SelectorWait time.Duration `yaml:"selector_wait"`
}

// FetchConfig configures the direct HTTP fetcher shared by the static and
// script-mining strategies.
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	RateLimit     float64       `yaml:"rate_limit"`
	RateBurst     int           `yaml:"rate_burst"`
	UserAgents    []string      `yaml:"user_agents"`
}

// ComplianceConfig toggles the robots.txt gate on direct fetches.
type ComplianceConfig struct {
	RespectRobotsTxt bool   `yaml:"respect_robots_txt"`
	UserAgent        string `yaml:"user_agent"`
}

// ArchiveConfig configures persistence of extraction records. Backend may
// be "sqlite", "postgres", "mysql", "mongodb", or empty to disable.
type ArchiveConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
	// Database and Collection apply to the mongodb backend only.
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	// Table applies to the SQL backends.
	Table string `yaml:"table"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// LoadFromFile loads configuration from a YAML file. A missing file is not
// an error: the defaults (plus environment) describe a runnable service.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		config := &Config{}
		applyDefaults(config)
		return config, config.Validate()
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes, expanding ${VAR}
// references from the environment first.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// applyDefaults fills unset fields. The rendering token additionally falls
// back to the BROWSERLESS_TOKEN environment variable so the credential
// never has to live in the config file.
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":5000"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 15 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 120 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 10 * time.Second
	}

	if config.Rendering.ServiceURL == "" {
		config.Rendering.ServiceURL = "wss://chrome.browserless.io"
	}
	if config.Rendering.Token == "" {
		config.Rendering.Token = os.Getenv("BROWSERLESS_TOKEN")
	}
	if config.Rendering.Timeout == 0 {
		config.Rendering.Timeout = 45 * time.Second
	}
	if config.Rendering.SelectorWait == 0 {
		config.Rendering.SelectorWait = 10 * time.Second
	}

	if config.Fetch.Timeout == 0 {
		config.Fetch.Timeout = 30 * time.Second
	}
	if config.Fetch.RetryAttempts == 0 {
		config.Fetch.RetryAttempts = 2
	}
	if config.Fetch.RetryDelay == 0 {
		config.Fetch.RetryDelay = time.Second
	}
	if config.Fetch.RateLimit == 0 {
		config.Fetch.RateLimit = 1.0
	}
	if config.Fetch.RateBurst == 0 {
		config.Fetch.RateBurst = 5
	}

	if config.Compliance.UserAgent == "" {
		config.Compliance.UserAgent = "PostExtractor"
	}

	if config.Archive.Table == "" {
		config.Archive.Table = "extractions"
	}
	if config.Archive.Database == "" {
		config.Archive.Database = "post_extractor"
	}
	if config.Archive.Collection == "" {
		config.Archive.Collection = "extractions"
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Archive.Backend) {
	case "", "sqlite", "postgres", "postgresql", "mysql", "mongodb":
	default:
		return fmt.Errorf("unknown archive backend %q", c.Archive.Backend)
	}
	if c.Archive.Backend != "" && c.Archive.DSN == "" {
		return fmt.Errorf("archive backend %q requires a dsn", c.Archive.Backend)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	if c.Fetch.RateLimit < 0 {
		return fmt.Errorf("fetch rate_limit cannot be negative")
	}
	return nil
}
