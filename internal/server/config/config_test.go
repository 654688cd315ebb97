package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.Redis.ReadTimeout != DefaultReadTimeout {
		t.Errorf("ReadTimeout = %v, want %v", cfg.Server.Redis.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.Server.Redis.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, want 5m", cfg.Server.Redis.IdleTimeout)
	}
	if cfg.Server.Redis.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0 (disabled)", cfg.Server.Redis.RateLimit)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
	if cfg.Metrics.Addr != DefaultMetricsAddr {
		t.Errorf("Metrics.Addr = %q, want %q", cfg.Metrics.Addr, DefaultMetricsAddr)
	}
	if cfg.Storage.ShardCount != DefaultShardCount {
		t.Errorf("ShardCount = %d, want %d", cfg.Storage.ShardCount, DefaultShardCount)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestVerify_ValidConfig(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ServerConfig)
	}{
		{"empty redis addr", func(c *ServerConfig) { c.Server.Redis.Addr = "" }},
		{"redis addr without port", func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" }},
		{"zero read timeout", func(c *ServerConfig) { c.Server.Redis.ReadTimeout = 0 }},
		{"negative write timeout", func(c *ServerConfig) { c.Server.Redis.WriteTimeout = -time.Second }},
		{"zero idle timeout", func(c *ServerConfig) { c.Server.Redis.IdleTimeout = 0 }},
		{"negative rate limit", func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 }},
		{"bad metrics addr", func(c *ServerConfig) { c.Metrics.Addr = "nope" }},
		{"metrics on redis port", func(c *ServerConfig) { c.Metrics.Addr = c.Server.Redis.Addr }},
		{"shard count zero", func(c *ServerConfig) { c.Storage.ShardCount = 0 }},
		{"shard count not power of two", func(c *ServerConfig) { c.Storage.ShardCount = 12 }},
		{"unknown log level", func(c *ServerConfig) { c.Log.Level = "verbose" }},
		{"unknown log format", func(c *ServerConfig) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := Verify(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Verify() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestVerify_MetricsDisabledSkipsAddr(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Addr = ""
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
}

func TestVerify_Nil(t *testing.T) {
	if err := Verify(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Verify(nil) error = %v", err)
	}
}

func TestVerify_TextFormatAndRateLimit(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "text"
	cfg.Log.Level = "DEBUG"
	cfg.Server.Redis.RateLimit = 100
	cfg.Storage.ShardCount = 64
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}
