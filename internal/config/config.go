// Package config provides configuration management for the report pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoSources                = errors.New("at least one source is required")
	ErrSourceMissingLocation    = errors.New("one of sheet_id, url, or file is required")
	ErrSourceAmbiguousLocation  = errors.New("sheet_id, url, and file are mutually exclusive")
	ErrNoEnabledSources         = errors.New("at least one source must be enabled")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrInvalidOutputFormat      = errors.New("output.format must be 'markdown' or 'json'")
	ErrInvalidTopCustomers      = errors.New("display.top_customers must be at least 1")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete report pipeline configuration.
type Config struct {
	Report ReportConfig `yaml:"report"`
}

// ReportConfig contains pipeline-specific settings.
type ReportConfig struct {
	Output  OutputConfig   `yaml:"output"`
	Sources []SourceConfig `yaml:"sources"`
	Display DisplayConfig  `yaml:"display"`
	Logging LoggingConfig  `yaml:"logging"`
	Retry   RetryPolicy    `yaml:"retry"`
}

// SourceConfig represents one order-data source. Exactly one of SheetID,
// URL, or File locates the data.
type SourceConfig struct {
	Name    string `yaml:"name"`
	SheetID string `yaml:"sheet_id"`
	URL     string `yaml:"url"`
	File    string `yaml:"file"`
	Enabled bool   `yaml:"enabled"`
}

// IsLocalFile returns true if this source reads a local file.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// Location returns whichever of sheet ID, URL, or file path is set.
func (s *SourceConfig) Location() string {
	switch {
	case s.SheetID != "":
		return s.SheetID
	case s.URL != "":
		return s.URL
	default:
		return s.File
	}
}

// RetryPolicy defines retry behavior for remote fetches.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// OutputConfig defines where and how the report is written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
	Sign        bool   `yaml:"sign"`
}

// DisplayConfig defines report presentation settings.
type DisplayConfig struct {
	TopCustomers int    `yaml:"top_customers"`
	Currency     string `yaml:"currency"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
			Output: OutputConfig{
				Format:      "markdown",
				PrettyPrint: true,
				Sign:        true,
			},
			Display: DisplayConfig{
				TopCustomers: 6,
				Currency:     "$",
			},
			Logging: LoggingConfig{
				Level:        "info",
				ShowProgress: true,
			},
		},
	}
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Report.Sources) == 0 {
		return ErrNoSources
	}

	enabledCount := 0

	for i, src := range c.Report.Sources {
		locations := 0

		for _, loc := range []string{src.SheetID, src.URL, src.File} {
			if loc != "" {
				locations++
			}
		}

		if locations == 0 {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingLocation, i)
		}

		if locations > 1 {
			return fmt.Errorf("%w: source[%d]", ErrSourceAmbiguousLocation, i)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	// Validate retry policy
	if c.Report.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Report.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Report.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Report.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate output config
	if c.Report.Output.Format != "markdown" && c.Report.Output.Format != "json" {
		return ErrInvalidOutputFormat
	}

	// Validate display config
	if c.Report.Display.TopCustomers < 1 {
		return ErrInvalidTopCustomers
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Report.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Report.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %d, MaxAttempts: %d, Output: %s}",
		len(c.Report.Sources),
		c.Report.Retry.MaxAttempts,
		c.Report.Output.Path,
	)
}
