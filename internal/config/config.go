// Package config loads linkcheck settings from an optional YAML file, .env
// files and LINKCHECK_* environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	lcerrors "git.home.luguber.info/inful/linkcheck/internal/errors"
)

// Config represents the application configuration. Every field is optional;
// the zero-config defaults reproduce the plain text report.
type Config struct {
	Format  string        `yaml:"format"` // text|json
	Syntax  string        `yaml:"syntax"` // inline|commonmark
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Events  EventsConfig  `yaml:"events"`
}

// LoggingConfig controls the stderr logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"` // Empty disables metrics
}

// EventsConfig controls publication of broken-link events to NATS.
type EventsConfig struct {
	NATSURL string      `yaml:"nats_url,omitempty"` // Empty disables publishing
	Subject string      `yaml:"subject"`
	Timeout string      `yaml:"timeout"`
	Retry   RetryConfig `yaml:"retry"`
}

// Enabled reports whether events should be published.
func (e EventsConfig) Enabled() bool {
	return e.NATSURL != ""
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		Format: "text",
		Syntax: "inline",
		Logging: LoggingConfig{
			Level:  LogLevelWarn,
			Format: LogFormatText,
		},
		Events: EventsConfig{
			Subject: "linkcheck.broken",
			Timeout: "5s",
			Retry: RetryConfig{
				Backoff:    RetryBackoffLinear,
				Initial:    "200ms",
				Max:        "2s",
				MaxRetries: 2,
			},
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath, .env files in the working directory and LINKCHECK_*
// environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadFile(configPath string, cfg *Config) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return lcerrors.ConfigNotFound(configPath)
	}

	// #nosec G304 -- config path is provided by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		return lcerrors.ConfigInvalid(configPath, fmt.Errorf("failed to read config file: %w", err))
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return lcerrors.ConfigInvalid(configPath, err)
	}
	return nil
}
