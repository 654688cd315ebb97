package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/yndnr/respkv-go/internal/telemetry/logger"
	"github.com/yndnr/respkv-go/pkg/cmap"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := verifyRedis(&cfg.Server.Redis); err != nil {
		return err
	}
	if err := verifyMetrics(cfg); err != nil {
		return err
	}
	if !cmap.ValidShardCount(cfg.Storage.ShardCount) {
		return fmt.Errorf("%w: storage.shard_count %d is not a power of two", ErrInvalidConfig, cfg.Storage.ShardCount)
	}
	return verifyLog(&cfg.Log)
}

func verifyRedis(cfg *RedisConfig) error {
	if err := verifyAddr("server.redis.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("%w: server.redis.read_timeout must be positive", ErrInvalidConfig)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server.redis.write_timeout must be positive", ErrInvalidConfig)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("%w: server.redis.idle_timeout must be positive", ErrInvalidConfig)
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("%w: server.redis.rate_limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

func verifyMetrics(cfg *ServerConfig) error {
	if !cfg.Metrics.Enabled {
		return nil
	}
	if err := verifyAddr("metrics.addr", cfg.Metrics.Addr); err != nil {
		return err
	}
	if cfg.Metrics.Addr == cfg.Server.Redis.Addr {
		return fmt.Errorf("%w: metrics.addr conflicts with server.redis.addr", ErrInvalidConfig)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("%w: log.format %q (want json or text)", ErrInvalidConfig, cfg.Format)
	}
}

func verifyAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, name)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, name, addr, err)
	}
	return nil
}
