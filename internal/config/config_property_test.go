package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Property 4: Configuration parsing
// Validates: env overrides decode into typed fields

func TestProperty_ConfigEnvParsing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		for _, key := range envKeys {
			os.Unsetenv(EnvPrefix + key)
		}

		port := rapid.IntRange(1, 65535).Draw(rt, "port")
		level := rapid.SampledFrom([]string{"debug", "info", "warn", "error"}).Draw(rt, "level")
		secs := rapid.IntRange(1, 600).Draw(rt, "secs")
		capacity := rapid.IntRange(0, 1_000_000).Draw(rt, "capacity")

		os.Setenv(EnvPrefix+"PORT", fmt.Sprintf("%d", port))
		os.Setenv(EnvPrefix+"LOG_LEVEL", level)
		os.Setenv(EnvPrefix+"IDLE_TIMEOUT", fmt.Sprintf("%ds", secs))
		os.Setenv(EnvPrefix+"DEFAULT_CAPACITY", fmt.Sprintf("%d", capacity))
		defer func() {
			for _, key := range envKeys {
				os.Unsetenv(EnvPrefix + key)
			}
		}()

		cfg, err := Load("")
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != port {
			rt.Fatalf("Port = %d, want %d", cfg.Port, port)
		}
		if cfg.LogLevel != level {
			rt.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, level)
		}
		if cfg.IdleTimeout != time.Duration(secs)*time.Second {
			rt.Fatalf("IdleTimeout = %v, want %ds", cfg.IdleTimeout, secs)
		}
		if cfg.DefaultCapacity != float64(capacity) {
			rt.Fatalf("DefaultCapacity = %v, want %d", cfg.DefaultCapacity, capacity)
		}
	})
}
