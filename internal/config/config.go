package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a bedpredict run.
type Config struct {
	ModelPath         string
	InputPath         string
	OutputPath        string
	ConfigFile        string
	LogFormat         string  // "text" or "json"
	LogLevel          string  // zerolog level name; "disabled" by default
	DefaultConfidence float64 // 0 means the built-in default; explicit values must pass CheckConfidence
	Workers           int     // batch inference goroutines; 0 means GOMAXPROCS
	FailFast          bool
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	DefaultConfidence *float64 `yaml:"default_confidence"`
	LogFormat         string   `yaml:"log_format"`
	LogLevel          string   `yaml:"log_level"`
	Workers           *int     `yaml:"workers"`
}

// LoadFromFile reads a YAML config file and merges the values it sets into
// Config. Keys absent from the file leave the current values untouched.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.DefaultConfidence != nil {
		if err := CheckConfidence(*yc.DefaultConfidence); err != nil {
			return fmt.Errorf("config file default_confidence: %w", err)
		}
		c.DefaultConfidence = *yc.DefaultConfidence
	}
	if yc.Workers != nil {
		c.Workers = *yc.Workers
	}
	if yc.LogFormat != "" {
		c.LogFormat = yc.LogFormat
	}
	if yc.LogLevel != "" {
		c.LogLevel = yc.LogLevel
	}
	return c.validateTuning()
}

// CheckConfidence validates an explicitly configured default confidence.
// Zero is rejected since a zero Config value stands for the built-in default.
func CheckConfidence(v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("default confidence %v outside (0, 1]", v)
	}
	return nil
}

// validateTuning checks the settings shared by every command.
func (c *Config) validateTuning() error {
	if c.DefaultConfidence < 0 || c.DefaultConfidence > 1 {
		return fmt.Errorf("default confidence %v outside [0, 1]", c.DefaultConfidence)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("unknown log level %q", c.LogLevel)
		}
	}
	return nil
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	return c.validateTuning()
}

// ValidateModel checks that the model path is set and points at a file.
func (c *Config) ValidateModel() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ModelPath == "" {
		return fmt.Errorf("--model is required")
	}
	if _, err := os.Stat(c.ModelPath); err != nil {
		return fmt.Errorf("model not accessible: %w", err)
	}
	return nil
}

// ValidateBatch checks model, input and output fields.
func (c *Config) ValidateBatch() error {
	if err := c.ValidateModel(); err != nil {
		return err
	}
	if c.InputPath == "" {
		return fmt.Errorf("--input is required")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("input not accessible: %w", err)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("--output is required")
	}
	if c.OutputPath == c.InputPath {
		return fmt.Errorf("--output must differ from --input")
	}
	return nil
}
