// Package config loads numcalc settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings shared by every command.
type Config struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	GRPCPort     int    `yaml:"grpc_port"`
	HistoryLimit int    `yaml:"history_limit"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8787,
		GRPCPort:     8788,
		HistoryLimit: 100,
		LogLevel:     "info",
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// non-empty), then environment variables. Command-line flags are applied by
// the caller on top of the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"GRPC_PORT", &c.GRPCPort},
		{"HISTORY_LIMIT", &c.HistoryLimit},
	}
	for _, e := range ints {
		v := getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s: invalid integer %q", e.key, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks ports and limits.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port %d", c.GRPCPort)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCAddr returns the gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}
