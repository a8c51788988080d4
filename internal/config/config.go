package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load
// (RESEXCHANGE_LOG_LEVEL -> log_level).
const EnvPrefix = "RESEXCHANGE_"

// Config holds all runtime configuration for the exchange server.
type Config struct {
	Port            int           `koanf:"port"`
	LogLevel        string        `koanf:"log_level"`
	DefaultCapacity float64       `koanf:"default_capacity"` // 0 means unbounded
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Load applies defaults, then the YAML file at path (if path is not empty),
// then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, val := range map[string]any{
		"port":             8080,
		"log_level":        "info",
		"default_capacity": 0.0,
		"read_timeout":     5 * time.Second,
		"write_timeout":    10 * time.Second,
		"idle_timeout":     60 * time.Second,
		"shutdown_timeout": 10 * time.Second,
	} {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be in 1..65535", c.Port)
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level: %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if math.IsNaN(c.DefaultCapacity) || c.DefaultCapacity < 0 {
		return fmt.Errorf("invalid default_capacity: %v, must be >= 0", c.DefaultCapacity)
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.ReadTimeout,
		"write_timeout":    c.WriteTimeout,
		"idle_timeout":     c.IdleTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s: %v, must be positive", name, d)
		}
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
