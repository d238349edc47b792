package cli

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/harnesslab/loom/internal/api"
	"github.com/harnesslab/loom/pkg/cache"
	"github.com/harnesslab/loom/pkg/pipeline"
)

// =============================================================================
// Server Configuration
// =============================================================================

// serveConfig is the TOML configuration for the serve command.
type serveConfig struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`

	Cache serveCacheConfig `toml:"cache"`
}

// serveCacheConfig selects and configures the cache backend.
type serveCacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// KeyPrefix namespaces cache keys, for shared Redis deployments.
	KeyPrefix string `toml:"key_prefix"`

	Redis serveRedisConfig `toml:"redis"`
}

type serveRedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func defaultServeConfig() serveConfig {
	return serveConfig{
		Addr: ":8080",
		Cache: serveCacheConfig{
			Backend: "file",
			Redis:   serveRedisConfig{Addr: "localhost:6379"},
		},
	}
}

// loadServeConfig reads a TOML config file over the defaults.
func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// serverCache builds the cache backend selected by the config.
func serverCache(ctx context.Context, cfg serveCacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "file", "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be file, redis, or none)", cfg.Backend)
	}
}

// =============================================================================
// Serve Command
// =============================================================================

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Serve runs the layout engine as an HTTP API.

Endpoints:
  POST /v1/layout/position   position a scene
  POST /v1/layout/route      route a positioned scene
  POST /v1/layout/preview    render a top-down SVG preview
  GET  /healthz              health check

Configuration is read from a TOML file (--config); the --addr flag
overrides the configured listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			store, err := serverCache(ctx, cfg.Cache)
			if err != nil {
				return fmt.Errorf("cache backend: %w", err)
			}

			var keyer cache.Keyer
			if cfg.Cache.KeyPrefix != "" {
				keyer = cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
			}

			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			c.Logger.Info("starting server",
				"addr", cfg.Addr,
				"cache", cfg.Cache.Backend)

			server := api.NewServer(runner, c.Logger)
			return server.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file path")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
