package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServeConfigDefaults(t *testing.T) {
	cfg, err := loadServeConfig("")
	if err != nil {
		t.Fatalf("loadServeConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Cache.Redis.Addr)
	}
}

func TestLoadServeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom.toml")
	data := `
addr = ":9090"

[cache]
backend = "redis"
key_prefix = "program:gx:"

[cache.redis]
addr = "redis.internal:6379"
db = 2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadServeConfig(path)
	if err != nil {
		t.Fatalf("loadServeConfig: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Cache.KeyPrefix != "program:gx:" {
		t.Errorf("KeyPrefix = %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
}

func TestLoadServeConfigMissingFile(t *testing.T) {
	if _, err := loadServeConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestServerCacheBackends(t *testing.T) {
	ctx := context.Background()

	// "none" disables caching
	c, err := serverCache(ctx, serveCacheConfig{Backend: "none"})
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	c.Close()

	// "file" with explicit dir
	c, err = serverCache(ctx, serveCacheConfig{Backend: "file", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	c.Close()

	// unknown backend is rejected
	if _, err := serverCache(ctx, serveCacheConfig{Backend: "memcached"}); err == nil {
		t.Error("unknown backend should fail")
	}
}
