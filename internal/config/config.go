package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultCSVPath is where gofaxip deployments keep the gateway file.
const DefaultCSVPath = "/opt/gofaxip-process/gateway_phone.csv"

// Config is the top-level uid2gateway configuration.
type Config struct {
	Routing RoutingConfig `yaml:"routing"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// RoutingConfig locates the gateway record file.
type RoutingConfig struct {
	CSVPath   string `yaml:"csv_path"`
	Delimiter string `yaml:"delimiter"`
}

// ServerConfig holds HTTP listener settings for serve mode.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// HistoryConfig sizes the in-memory lookup history kept by serve mode.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Comma returns the delimiter as a rune. Only valid after Load or Default.
func (r RoutingConfig) Comma() rune {
	c, _ := utf8.DecodeRuneInString(r.Delimiter)
	return c
}

// Default returns a Config with every field at its default.
func Default() *Config {
	var cfg Config
	cfg.defaults()
	return &cfg
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.Routing.CSVPath == "" {
		c.Routing.CSVPath = DefaultCSVPath
	}
	if c.Routing.Delimiter == "" {
		c.Routing.Delimiter = ","
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = 1000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// validate checks required fields and value constraints.
func (c *Config) validate() error {
	if utf8.RuneCountInString(c.Routing.Delimiter) != 1 {
		return fmt.Errorf("routing.delimiter must be a single character, got %q", c.Routing.Delimiter)
	}
	switch c.Routing.Comma() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("routing.delimiter %q is not allowed", c.Routing.Delimiter)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must be non-negative")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// expandEnv replaces ${VAR} references in the record file path so one
// config can be shared across hosts.
func (c *Config) expandEnv() {
	c.Routing.CSVPath = os.ExpandEnv(c.Routing.CSVPath)
}

// Load reads a YAML config file, applies defaults, expands env vars, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandEnv()
	cfg.defaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadOptional is Load, except a missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
