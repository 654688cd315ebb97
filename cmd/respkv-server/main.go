// Command respkv-server runs the respkv RESP server.
//
// Usage:
//
//	respkv-server [--config respkv.yaml] [--addr 127.0.0.1:6379] [--log-level debug] [--metrics-addr 127.0.0.1:9121]
//
// Configuration comes from the YAML file, RESPKV_* environment variables
// and the flags above, in increasing priority. Changes to log.level in the
// config file apply without a restart.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv-go/internal/infra/buildinfo"
	"github.com/yndnr/respkv-go/internal/infra/confloader"
	"github.com/yndnr/respkv-go/internal/infra/shutdown"
	"github.com/yndnr/respkv-go/internal/server/config"
	"github.com/yndnr/respkv-go/internal/server/httpserver"
	"github.com/yndnr/respkv-go/internal/server/redisserver"
	"github.com/yndnr/respkv-go/internal/storage/memory"
	"github.com/yndnr/respkv-go/internal/telemetry/logger"
	"github.com/yndnr/respkv-go/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "in-memory key-value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "RESP listen address (overrides server.redis.addr)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides log.level)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "ops HTTP listen address (overrides metrics.addr)",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.String("config"), flagOverrides(c))
		},
	}
}

// flagOverrides maps set flags onto config keys.
func flagOverrides(c *cli.Context) map[string]any {
	keys := map[string]string{
		"addr":         "server.redis.addr",
		"log-level":    "log.level",
		"metrics-addr": "metrics.addr",
	}
	out := make(map[string]any)
	for flag, key := range keys {
		if c.IsSet(flag) {
			out[key] = c.String(flag)
		}
	}
	return out
}

func run(ctx context.Context, configFile string, overrides map[string]any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
	cfg, err := loadConfig(loader, overrides)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	bi := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", bi.Version,
		"commit", bi.Commit,
		"go", bi.GoVersion,
		"config", configFile)

	store := memory.New(memory.WithShardCount(cfg.Storage.ShardCount))
	log.Debug("store initialized", "shards", store.ShardCount())

	metrics := metric.Global()
	metrics.MustRegister(metric.NewStoreCollector(store))

	redisCfg := &redisserver.Config{
		Addr:         cfg.Server.Redis.Addr,
		ReadTimeout:  cfg.Server.Redis.ReadTimeout,
		WriteTimeout: cfg.Server.Redis.WriteTimeout,
		IdleTimeout:  cfg.Server.Redis.IdleTimeout,
		RateLimit:    cfg.Server.Redis.RateLimit,
	}
	redisSrv := redisserver.New(redisCfg, store,
		redisserver.WithLogger(log),
		redisserver.WithMetrics(metrics),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, shutdown.WithLogger(log))

	if cfg.Metrics.Enabled {
		opsSrv := httpserver.New(cfg.Metrics.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics: metrics.Handler(),
			Ready:   redisSrv.Ready,
			Logger:  log,
		}))
		err := opsSrv.Start(func(err error) {
			log.Error("ops server error", "error", err)
			cancel()
		})
		if err != nil {
			return fmt.Errorf("start ops server: %w", err)
		}
		log.Info("ops server listening", "address", opsSrv.Addr().String())
		shutdownHandler.OnShutdown("ops server", opsSrv.Shutdown)
	}

	if err := redisSrv.Start(ctx); err != nil {
		_ = shutdownHandler.Shutdown()
		return err
	}
	shutdownHandler.OnShutdown("redis server", redisSrv.Shutdown)

	if configFile != "" {
		watcher, err := watchConfig(ctx, loader, overrides, log)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started", "address", redisSrv.Addr().String())
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

// loadConfig builds the effective configuration: defaults, file, env, then
// flag overrides, and validates it.
func loadConfig(loader *confloader.Loader, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(loader, cfg, overrides); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyOverrides(loader *confloader.Loader, cfg *config.ServerConfig, overrides map[string]any) error {
	if err := loader.LoadMap(overrides); err != nil {
		return err
	}
	if err := loader.Unmarshal(cfg); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	return nil
}

// watchConfig reloads the config file on change and applies the new log
// level. Other settings need a restart.
func watchConfig(ctx context.Context, loader *confloader.Loader, overrides map[string]any, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(loader.FilePath()); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := reloadConfig(loader, overrides)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}
		old := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		if cur := logger.GetLevel(); cur != old {
			log.Info("log level changed", "from", old, "to", cur)
		}
	})
	w.StartAsync(ctx)
	return w, nil
}

func reloadConfig(loader *confloader.Loader, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()
	if err := loader.Reload(cfg); err != nil {
		return nil, err
	}
	if err := applyOverrides(loader, cfg, overrides); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
